package app

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/flowers/config"
	cachemem "github.com/Gunvolt24/flowers/internal/cache/memory"
	"github.com/Gunvolt24/flowers/internal/catalog"
)

type nopLog struct{ warned int }

func (*nopLog) Infof(context.Context, string, ...any)   {}
func (l *nopLog) Warnf(context.Context, string, ...any) { l.warned++ }
func (*nopLog) Errorf(context.Context, string, ...any)  {}

func TestApplyGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	tests := []struct {
		in       string
		want     string
		wantWarn bool
	}{
		{"release", gin.ReleaseMode, false},
		{" TEST ", gin.TestMode, false},
		{"", gin.DebugMode, false},
		{"prod", gin.DebugMode, true},
	}
	for _, tt := range tests {
		log := &nopLog{}
		applyGinMode(context.Background(), tt.in, log)
		if gin.Mode() != tt.want || (log.warned > 0) != tt.wantWarn {
			t.Fatalf("mode %q: got %s warned=%d", tt.in, gin.Mode(), log.warned)
		}
	}
}

func TestTokenSource(t *testing.T) {
	if _, ok := tokenSource(config.Catalog{TokenFile: "/tmp/token", Token: "x"}).(*catalog.FileTokenSource); !ok {
		t.Fatalf("token file must take precedence")
	}
	tok, err := tokenSource(config.Catalog{Token: "static"}).Token(context.Background())
	if err != nil || tok != "static" {
		t.Fatalf("static token: got %q err=%v", tok, err)
	}
}

func TestDraftStore(t *testing.T) {
	store, closer, err := draftStore(context.Background(), config.Drafts{Backend: "Memory", Capacity: 10, TTL: time.Minute})
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := store.(*cachemem.DraftStore); !ok {
		t.Fatalf("want memory store, got %T", store)
	}
	if err := closer(); err != nil {
		t.Fatalf("memory closer: %v", err)
	}

	if _, _, err := draftStore(context.Background(), config.Drafts{Backend: "etcd"}); err == nil {
		t.Fatalf("unknown backend must fail")
	}
}

func TestMetricsServer(t *testing.T) {
	if metricsServer("", ":8080") != nil || metricsServer(":8080", ":8080") != nil {
		t.Fatalf("metrics server must be disabled for empty or shared address")
	}
	if srv := metricsServer(":2112", ":8080"); srv == nil || srv.Addr != ":2112" {
		t.Fatalf("metrics server must listen on its own address")
	}
}
