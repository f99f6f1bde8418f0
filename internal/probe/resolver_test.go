package probe

import (
	"context"
	"testing"
	"time"
)

func TestSystemResolver_LiteralIPSkipsLookup(t *testing.T) {
	r := NewSystemResolver()
	res := r.Resolve(context.Background(), "10.0.0.1")
	if !res.Resolved() {
		t.Fatalf("literal IP must resolve, got %+v", res)
	}
	if len(res.Addrs) != 1 || res.Addrs[0] != "10.0.0.1" {
		t.Fatalf("want [10.0.0.1], got %v", res.Addrs)
	}
}

func TestDNSResolver_LiteralIPSkipsLookup(t *testing.T) {
	r := NewDNSResolver("192.0.2.1:53", time.Second)
	res := r.Resolve(context.Background(), "2001:db8::1")
	if !res.Resolved() {
		t.Fatalf("literal IPv6 must resolve, got %+v", res)
	}
}

func TestDNSResolver_UnreachableServerIsServfailClass(t *testing.T) {
	// TEST-NET-1 address; nothing answers, and the 50ms timeout keeps
	// the test fast.
	r := NewDNSResolver("192.0.2.1:53", 50*time.Millisecond)
	res := r.Resolve(context.Background(), "example.com")
	if res.Class != ClassServfailOrTimeout {
		t.Fatalf("want %s, got %+v", ClassServfailOrTimeout, res)
	}
}
