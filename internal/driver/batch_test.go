package driver

import (
	"context"
	"testing"

	"github.com/simonzhangsm/capnproto/internal/decltest"
	"github.com/simonzhangsm/capnproto/internal/schema"
)

func TestTranslateBatchPreservesOrderAndTranslates(t *testing.T) {
	jobs := make([]Job, 5)
	for i := range jobs {
		d := decltest.Struct("S", decltest.Field("a", 0, decltest.UInt8()))
		jobs[i] = Job{
			Decl:     d,
			Node:     &schema.Node{DisplayName: d.Name()},
			Resolver: decltest.NopResolver{},
		}
	}

	results, err := TranslateBatch(context.Background(), jobs, nil, 50, 2)
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("results = %d; want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Node == nil {
			t.Fatalf("result %d has a nil Node", i)
		}
		if r.Node.DataSectionWordSize != 1 {
			t.Fatalf("result %d DataSectionWordSize = %d; want 1", i, r.Node.DataSectionWordSize)
		}
		if r.Cached {
			t.Fatalf("result %d should not be cached on a cache-less batch", i)
		}
	}
}

func TestTranslateBatchUsesCacheOnSecondRun(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	d := decltest.Struct("Cached", decltest.Field("a", 0, decltest.UInt8()))
	digest := HashBytes([]byte("struct Cached { a @0 :UInt8; }"))
	job := Job{
		Decl:          d,
		Node:          &schema.Node{DisplayName: d.Name()},
		Resolver:      decltest.NopResolver{},
		ContentDigest: digest,
	}

	first, err := TranslateBatch(context.Background(), []Job{job}, cache, 50, 1)
	if err != nil {
		t.Fatalf("TranslateBatch (first): %v", err)
	}
	if first[0].Cached {
		t.Fatal("the first run should be a cache miss")
	}

	job.Node = &schema.Node{DisplayName: d.Name()} // fresh node; the cache should still serve the prior layout
	second, err := TranslateBatch(context.Background(), []Job{job}, cache, 50, 1)
	if err != nil {
		t.Fatalf("TranslateBatch (second): %v", err)
	}
	if !second[0].Cached {
		t.Fatal("the second run with the same content digest should hit the cache")
	}
	if second[0].Node.DataSectionWordSize != 1 {
		t.Fatalf("cached node DataSectionWordSize = %d; want 1", second[0].Node.DataSectionWordSize)
	}
}

func TestTranslateBatchEnumDispatch(t *testing.T) {
	d := decltest.Enum("Color",
		decltest.Enumerant("red", 0),
		decltest.Enumerant("green", 1),
	)
	job := Job{Decl: d, Node: &schema.Node{DisplayName: "Color"}, Resolver: decltest.NopResolver{}}

	results, err := TranslateBatch(context.Background(), []Job{job}, nil, 50, 1)
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(results[0].Node.Enumerants) != 2 {
		t.Fatalf("Enumerants = %d; want 2", len(results[0].Node.Enumerants))
	}
}
