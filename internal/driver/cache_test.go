package driver

import (
	"testing"

	"github.com/simonzhangsm/capnproto/internal/schema"
)

func TestDiskCachePutGetRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	key := HashBytes([]byte("struct Point { x @0 :UInt32; }"))
	payload := &DiskPayload{
		Node: &schema.Node{DisplayName: "Point", DataSectionWordSize: 1},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get should find the entry just Put")
	}
	if got.Node.DisplayName != "Point" || got.Node.DataSectionWordSize != 1 {
		t.Fatalf("round-tripped node = %+v", got.Node)
	}
}

func TestDiskCacheGetMiss(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := HashBytes([]byte("nothing written for this key"))
	_, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get should report a miss for a key nothing was Put under")
	}
}

func TestDiskCacheDropAllClearsEntries(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := HashBytes([]byte("struct Point {}"))
	if err := cache.Put(key, &DiskPayload{Node: &schema.Node{}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	_, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get after DropAll: %v", err)
	}
	if ok {
		t.Fatal("Get should miss after DropAll")
	}
}

func TestDiskCacheNilIsSafe(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(HashBytes([]byte("x")), &DiskPayload{}); err != nil {
		t.Fatalf("Put on a nil *DiskCache should be a no-op: %v", err)
	}
	if _, ok, err := cache.Get(HashBytes([]byte("x"))); ok || err != nil {
		t.Fatalf("Get on a nil *DiskCache should report a clean miss: ok=%v err=%v", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll on a nil *DiskCache should be a no-op: %v", err)
	}
}
