package memory

import (
	"context"
	"sync"
	"testing"

	"novel-studio-api/internal/domain/entity"
)

func TestSessionStoreDefaults(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	if err := s.GetOrCreate(ctx, "alice"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	err := s.View(ctx, "alice", func(sess *entity.Session) error {
		if sess.Provider != entity.ProviderGemini {
			t.Errorf("default provider = %s, want gemini", sess.Provider)
		}
		if sess.Usage == nil {
			t.Error("usage ledger not initialized")
		}
		if sess.Credential(entity.ProviderGemini) != "" {
			t.Error("new session has credential")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestSessionStoreUpdateIsSerialized(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "alice", func(sess *entity.Session) error {
				sess.Usage.TotalRequests++
				return nil
			})
		}()
	}
	wg.Wait()

	_ = s.View(ctx, "alice", func(sess *entity.Session) error {
		if sess.Usage.TotalRequests != 100 {
			t.Errorf("total requests = %d, want 100", sess.Usage.TotalRequests)
		}
		return nil
	})
}

func TestSessionStoreIsolatedPerUser(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	_ = s.Update(ctx, "alice", func(sess *entity.Session) error {
		sess.Provider = entity.ProviderClaude
		sess.SetCredential(entity.ProviderClaude, "secret")
		return nil
	})

	_ = s.View(ctx, "bob", func(sess *entity.Session) error {
		if sess.Provider != entity.ProviderGemini {
			t.Errorf("bob inherited alice's provider: %s", sess.Provider)
		}
		if sess.Credential(entity.ProviderClaude) != "" {
			t.Error("bob inherited alice's credential")
		}
		return nil
	})
}
