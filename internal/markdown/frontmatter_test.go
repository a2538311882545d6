package markdown

import (
	"testing"
	"time"
)

const postSource = `---
title: "On Marginalia"
summary: "Notes in the margin"
tags:
  - essays
  - typography
author: Jane Doe
date: 2024-03-01T00:00:00Z
draft: true
layout: post
---

Body text goes here.
`

func TestParseFrontMatter(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte(postSource))
	if err != nil {
		t.Fatalf("ParseFrontMatter() error: %v", err)
	}

	if meta.Title != "On Marginalia" {
		t.Fatalf("title = %q", meta.Title)
	}
	if meta.Summary != "Notes in the margin" {
		t.Fatalf("summary = %q", meta.Summary)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "essays" {
		t.Fatalf("tags = %v", meta.Tags)
	}
	if meta.Author != "Jane Doe" {
		t.Fatalf("author = %q", meta.Author)
	}
	if !meta.Draft {
		t.Fatal("draft flag lost")
	}
	if meta.Date.IsZero() {
		t.Fatal("date lost")
	}
	if meta.Custom["layout"] != "post" {
		t.Fatalf("custom fields = %v", meta.Custom)
	}
	if string(body) != "\nBody text goes here.\n" {
		t.Fatalf("body = %q", body)
	}
}

func TestParseFrontMatter_NoDelimiters(t *testing.T) {
	source := "Just a plain document."
	meta, body, err := ParseFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("ParseFrontMatter() error: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if string(body) != source {
		t.Fatalf("body = %q", body)
	}
}

func TestBuildDocument_DerivesSlugFromTitle(t *testing.T) {
	modified := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	doc, err := BuildDocument("posts/marginalia.md", []byte(postSource), modified)
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}

	if doc.FilePath != "posts/marginalia.md" {
		t.Fatalf("file path = %q", doc.FilePath)
	}
	if doc.FrontMatter.Slug != "on-marginalia" {
		t.Fatalf("slug = %q", doc.FrontMatter.Slug)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("modified = %v", doc.LastModified)
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatal("BodyHTML should be empty until rendered")
	}
}

func TestBuildDocument_KeepsExplicitSlug(t *testing.T) {
	source := "---\ntitle: Some Title\nslug: custom-slug\n---\nbody"

	doc, err := BuildDocument("a.md", []byte(source), time.Now())
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}
	if doc.FrontMatter.Slug != "custom-slug" {
		t.Fatalf("slug = %q", doc.FrontMatter.Slug)
	}
}
