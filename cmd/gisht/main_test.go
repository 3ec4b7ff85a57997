package main

import (
	"reflect"
	"testing"

	"github.com/gisht/gisht/internal/logx"
)

func TestParseCommonFlagsStripsFlagsAndKeepsOrder(t *testing.T) {
	defer logx.SetLevel(logx.LevelWarn)

	got := parseCommonFlags([]string{"-v", "gh:octocat/example", "-q", "arg1", "-v"})
	want := []string{"gh:octocat/example", "-q", "arg1", "-v"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseCommonFlagsWithNoFlags(t *testing.T) {
	got := parseCommonFlags([]string{"which", "gh:octocat/example"})
	want := []string{"which", "gh:octocat/example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
