package crm

import (
	"net/http"
	"testing"
	"time"
)

func TestWithHTTPTimeout(t *testing.T) {
	b, err := NewBackend("https://proj.supabase.co", "anon", WithHTTPTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewBackend error: %v", err)
	}
	if b.http.Timeout != 5*time.Second {
		t.Fatalf("timeout not applied: %v", b.http.Timeout)
	}
}

func TestWithHTTPTimeout_Invalid(t *testing.T) {
	if _, err := NewBackend("https://proj.supabase.co", "anon", WithHTTPTimeout(0)); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
}

func TestWithHTTPClient_Nil(t *testing.T) {
	if _, err := NewBackend("https://proj.supabase.co", "anon", WithHTTPClient(nil)); err == nil {
		t.Fatal("expected error for nil http client")
	}
}

func TestWithDebugLogging_WrapsTransport(t *testing.T) {
	b, err := NewBackend("https://proj.supabase.co", "anon", WithDebugLogging(true))
	if err != nil {
		t.Fatalf("NewBackend error: %v", err)
	}
	at, ok := b.http.Transport.(*authTransport)
	if !ok {
		t.Fatalf("auth wrapper must stay outermost, got %T", b.http.Transport)
	}
	if _, ok := at.base.(*debugTransport); !ok {
		t.Fatalf("debug transport must sit beneath the auth wrapper, got %T", at.base)
	}
}

func TestWithHTTPClient_Custom(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	b, err := NewBackend("https://proj.supabase.co", "anon", WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("NewBackend error: %v", err)
	}
	if b.http != hc {
		t.Fatal("custom http client not installed")
	}
}
