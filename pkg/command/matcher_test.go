package command

import "testing"

func TestMatch(t *testing.T) {
	table := []Command{
		{Name: "music", Keywords: []string{"play", "song"}},
		{Name: "lights", Keywords: []string{"lamp", "bright"}},
	}

	t.Run("direct name match", func(t *testing.T) {
		if got := Match("turn on the lights please", table); got != "lights" {
			t.Errorf("expected lights, got %q", got)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if got := Match("TURN ON THE LIGHTS", table); got != "lights" {
			t.Errorf("expected lights, got %q", got)
		}
	})

	t.Run("keyword match", func(t *testing.T) {
		if got := Match("make it bright in here", table); got != "lights" {
			t.Errorf("expected lights, got %q", got)
		}
	})

	t.Run("direct name beats earlier keyword", func(t *testing.T) {
		// "play" is a keyword of music (first in table), but the
		// transcript names lights directly.
		if got := Match("play with the lights", table); got != "lights" {
			t.Errorf("expected lights, got %q", got)
		}
	})

	t.Run("first keyword match by order", func(t *testing.T) {
		shadow := []Command{
			{Name: "alpha", Keywords: []string{"go"}},
			{Name: "beta", Keywords: []string{"go"}},
		}
		if got := Match("go now", shadow); got != "alpha" {
			t.Errorf("expected alpha, got %q", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := Match("what time is it", table); got != "" {
			t.Errorf("expected no match, got %q", got)
		}
	})

	t.Run("empty transcript", func(t *testing.T) {
		if got := Match("   ", table); got != "" {
			t.Errorf("expected no match, got %q", got)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		if got := Match("turn on the lights", nil); got != "" {
			t.Errorf("expected no match, got %q", got)
		}
	})

	t.Run("malformed entry skipped", func(t *testing.T) {
		bad := []Command{
			{Name: "", Keywords: []string{"lights"}},
			{Name: "lights", Keywords: nil},
		}
		if got := Match("lights on", bad); got != "lights" {
			t.Errorf("expected lights, got %q", got)
		}
	})
}

func TestTableFromActions(t *testing.T) {
	t.Run("deterministic order", func(t *testing.T) {
		actions := map[string]Action{
			"weather": {Keyword: "forecast"},
			"lights":  {Keyword: "lamp", Keywords: []string{"bright"}},
			"music":   {Keywords: []string{"play", "song"}},
		}

		a := TableFromActions(actions)
		b := TableFromActions(actions)
		if len(a) != 3 || len(b) != 3 {
			t.Fatalf("expected 3 entries, got %d and %d", len(a), len(b))
		}
		for i := range a {
			if a[i].Name != b[i].Name {
				t.Errorf("order differs at %d: %q vs %q", i, a[i].Name, b[i].Name)
			}
		}
		if a[0].Name != "lights" || a[1].Name != "music" || a[2].Name != "weather" {
			t.Errorf("unexpected order: %v", a)
		}
	})

	t.Run("keyword shorthand merged", func(t *testing.T) {
		table := TableFromActions(map[string]Action{
			"lights": {Keyword: "lamp", Keywords: []string{"bright", ""}},
		})
		if len(table) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(table))
		}
		kws := table[0].Keywords
		if len(kws) != 2 || kws[0] != "lamp" || kws[1] != "bright" {
			t.Errorf("unexpected keywords: %v", kws)
		}
	})

	t.Run("malformed entry skipped", func(t *testing.T) {
		table := TableFromActions(map[string]Action{
			"":       {Keyword: "ghost"},
			"lights": {},
		})
		if len(table) != 1 || table[0].Name != "lights" {
			t.Errorf("unexpected table: %v", table)
		}
	})
}
