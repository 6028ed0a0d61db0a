package wsys

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textrun"
	"golang.org/x/text/language"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	for id, tag := range map[int]string{1: "en-US", 2: "de-DE-u-co-phonebk", 3: "zh-Hant", 4: "th"} {
		if _, err := reg.Register(id, tag); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}

func TestRegister(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	reg := testRegistry(t)
	if ids := reg.IDs(); len(ids) != 4 || ids[0] != 1 || ids[3] != 4 {
		t.Errorf("unexpected ids %v", ids)
	}
	ws, ok := reg.Lookup(3)
	if !ok || ws.Script.String() != "Hant" || !ws.IsEastAsian() {
		t.Errorf("expected East Asian writing system with script Hant, have %v", ws)
	}
	if ws, _ := reg.Lookup(1); ws.Script.String() != "Latn" || ws.IsEastAsian() {
		t.Errorf("expected Latin writing system, have %v", ws)
	}
	if ws, _ := reg.Lookup(4); !ws.IsEastAsian() {
		t.Errorf("expected Thai to be written without spaces between words")
	}
	if _, err := reg.Register(0, "en"); !errors.Is(err, textrun.ErrInvalidArgument) {
		t.Errorf("expected id 0 to be rejected, have %v", err)
	}
	if _, err := reg.Register(5, "not a tag!"); err == nil {
		t.Errorf("expected malformed tag to be rejected")
	}
}

func TestDefault(t *testing.T) {
	reg := testRegistry(t)
	if _, ok := reg.Lookup(0); ok {
		t.Errorf("expected no default writing system")
	}
	if err := reg.SetDefault(7); !errors.Is(err, textrun.ErrInvalidArgument) {
		t.Errorf("expected unknown default to be rejected, have %v", err)
	}
	reg.SetDefault(2)
	if ws, ok := reg.Lookup(0); !ok || ws.ID != 2 {
		t.Errorf("expected id 0 to resolve to the default, have %v", ws)
	}
}

func TestMatch(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	reg := testRegistry(t)
	ws, conf := reg.Match("en-GB")
	if ws == nil || ws.ID != 1 || conf == language.No {
		t.Errorf("expected en-GB to match ws 1, have %v (%s)", ws, conf)
	}
	ws, _ = reg.Match("de-AT")
	if ws == nil || ws.ID != 2 {
		t.Errorf("expected de-AT to match ws 2, have %v", ws)
	}
	if ws, conf := NewRegistry().Match("en"); ws != nil || conf != language.No {
		t.Errorf("expected empty registry to match nothing, have %v", ws)
	}
}

func TestEnvLocale(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tag := FromEnvironment()
	t.Logf("user environment has locale '%s'", tag)
	reg := testRegistry(t)
	if ws, ok := reg.DefaultFromEnvironment(); ok {
		if dflt, _ := reg.Lookup(0); dflt != ws {
			t.Errorf("expected %v to be the default writing system, is %v", ws, dflt)
		}
	}
}
