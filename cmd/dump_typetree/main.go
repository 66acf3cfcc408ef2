// Package main provides a command-line utility to decode a raw object
// payload against a JSON-described TypeTree schema. It prints the decoded
// value as indented JSON for debugging.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/assetcore"
)

type schemaNode struct {
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	MetaFlag int32        `json:"meta_flag"`
	Children []schemaNode `json:"children"`
}

func buildNode(s *schemaNode) *assetcore.TypeTreeNode {
	node := assetcore.NewTypeTreeNode(s.Type, s.Name, s.MetaFlag)
	for i := range s.Children {
		node.AddChild(buildNode(&s.Children[i]))
	}
	return node
}

func main() {
	// Define command-line flags
	schemaPath := flag.String("schema", "", "JSON file describing the TypeTree schema")
	endian := flag.String("endian", "<", "byte order of the payload: '<' or '>'")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || *schemaPath == "" {
		fmt.Println("Usage: dump_typetree -schema <schema.json> [flags] <payload.bin>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	if len(*endian) != 1 {
		log.Fatalf("Invalid endian code: %q", *endian)
	}

	schemaData, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema: %v", err)
	}
	var schema schemaNode
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		log.Fatalf("Failed to parse schema: %v", err)
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("Failed to read payload: %v", err)
	}

	value, bytesRead, err := assetcore.ReadTypeTree(payload, buildNode(&schema), (*endian)[0], nil)
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	fmt.Printf("Decoded %d of %d bytes from %s:\n", bytesRead, len(payload), args[0])
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}
	fmt.Println(string(pretty))
}
