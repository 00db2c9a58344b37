package session

import (
	"errors"
	"testing"

	"github.com/abhisek/learnpb/internal/catalog"
	"github.com/abhisek/learnpb/internal/guide"
)

func TestSelectClearsPreviousGuide(t *testing.T) {
	v := NewModuleView()
	token := v.Select(catalog.Modules[0])
	v.ApplyGuide(token, &guide.Guide{Module: "C", Content: "<h2>Introduction</h2>"})

	if v.Content == "" {
		t.Fatal("guide not installed")
	}

	v.Select(catalog.Modules[1])

	if v.Content != "" {
		t.Errorf("content = %q on reopen, want empty until fresh guide lands", v.Content)
	}
	if v.Phase() != GuideLoading {
		t.Errorf("phase = %v, want loading", v.Phase())
	}
	if v.Selected == nil || v.Selected.Name != catalog.Modules[1].Name {
		t.Error("selected module not updated")
	}
}

func TestApplyGuideStaleToken(t *testing.T) {
	v := NewModuleView()
	old := v.Select(catalog.Modules[0])
	fresh := v.Select(catalog.Modules[1])

	if v.ApplyGuide(old, &guide.Guide{Content: "stale"}) {
		t.Error("stale ApplyGuide accepted")
	}
	if v.Content != "" {
		t.Errorf("stale content installed: %q", v.Content)
	}

	if !v.ApplyGuide(fresh, &guide.Guide{Content: "fresh"}) {
		t.Error("fresh ApplyGuide rejected")
	}
	if v.Content != "fresh" {
		t.Errorf("content = %q, want fresh", v.Content)
	}
}

func TestCloseDiscardsInFlight(t *testing.T) {
	v := NewModuleView()
	token := v.Select(catalog.Modules[0])
	v.Close()

	if v.ApplyGuide(token, &guide.Guide{Content: "late"}) {
		t.Error("completion accepted after close")
	}
	if v.Phase() != GuideClosed {
		t.Errorf("phase = %v, want closed", v.Phase())
	}
	if v.Selected != nil || v.Content != "" {
		t.Error("close left state behind")
	}
}

func TestApplyErrorThenReopen(t *testing.T) {
	v := NewModuleView()
	token := v.Select(catalog.Modules[2])

	if !v.ApplyError(token, errors.New("unavailable")) {
		t.Fatal("ApplyError rejected")
	}
	if v.Phase() != GuideFailed {
		t.Errorf("phase = %v, want failed", v.Phase())
	}

	fresh := v.Select(catalog.Modules[2])
	if v.Err != nil {
		t.Errorf("err = %v after reopen, want nil", v.Err)
	}
	if !v.ApplyGuide(fresh, &guide.Guide{Content: "ok"}) {
		t.Error("fresh guide rejected after failed attempt")
	}
}
