package mmd_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/brvtalcake/mmd"
)

func ExampleParseString() {
	doc, err := mmd.ParseString("# Title\n\nSome *emphasized* text.\n")
	if err != nil {
		log.Fatal(err)
	}
	defer doc.Free()

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		fmt.Printf("%s: %s\n", node.Type(), node.CollectText())
	}
	// Output:
	// heading-1: Title
	// paragraph: Some emphasized text.
}

func ExampleMetadata() {
	doc, err := mmd.ParseString("---\ntitle: My Book\nauthor: Jane Doe\n---\n\n# Intro\n")
	if err != nil {
		log.Fatal(err)
	}
	defer doc.Free()

	title, _ := mmd.Metadata(doc, "title")
	author, _ := mmd.Metadata(doc, "author")
	fmt.Println(title, "by", author)
	// Output: My Book by Jane Doe
}

func ExampleRenderer() {
	doc, err := mmd.ParseString("# Hello\n")
	if err != nil {
		log.Fatal(err)
	}
	defer doc.Free()

	var buf bytes.Buffer
	if err := mmd.NewRenderer(mmd.WithOnlyBody()).Render(&buf, doc); err != nil {
		log.Fatal(err)
	}
	fmt.Print(buf.String())
	// Output: <h1 id="hello">Hello</h1>
}

func ExampleService_Convert() {
	service, err := mmd.NewService()
	if err != nil {
		log.Fatal(err)
	}
	defer service.Close()

	result, err := service.Convert(context.Background(), mmd.Input{
		Markdown: "# Getting Started\n\nWelcome!\n",
		HTMLOnly: true,
	})
	if err != nil {
		log.Fatal(err)
	}

	if len(result.HTML) > 0 {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

func ExampleServicePool() {
	pool := mmd.NewServicePool(2)
	defer pool.Close()

	service, err := pool.Acquire()
	if err != nil {
		log.Fatal(err)
	}

	result, err := service.Convert(context.Background(), mmd.Input{
		Markdown: "# Chapter One\n",
		HTMLOnly: true,
	})
	pool.Release(service)
	if err != nil {
		log.Fatal(err)
	}

	if len(result.HTML) > 0 {
		fmt.Println("converted with a pooled service")
	}
	// Output: converted with a pooled service
}
