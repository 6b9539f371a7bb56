package options

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}
	if err := o.HandleError(errors.New("compartment 3 not found")); err != nil {
		t.Fatalf("HandleError returned %v", err)
	}
	if got, want := buf.String(), "{\"error\":\"compartment 3 not found\"}\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	plain := &OutputOptions{}
	boom := errors.New("boom")
	if err := plain.HandleError(boom); err != boom {
		t.Fatalf("plain HandleError = %v", err)
	}
	if err := o.HandleError(nil); err != nil {
		t.Fatalf("nil error = %v", err)
	}
}

func TestTagOptions(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	o := &TagOptions{}
	AddTagArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--tag", "2,0", "-t", "7"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	ids, err := o.IDs()
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	if want := []uint32{2, 0, 7}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}

	o.Tags = []string{"1", "x"}
	if _, err := o.IDs(); err == nil || !strings.Contains(err.Error(), `"x"`) {
		t.Fatalf("expected parse error naming x, got %v", err)
	}
}

func TestParentOptions(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	o := &ParentOptions{}
	AddParentArg(cmd, o, "container", "Container id.")
	if err := cmd.ParseFlags([]string{"--container", "12"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id, err := o.ID(); err != nil || id != 12 {
		t.Fatalf("ID() = %d, %v", id, err)
	}
	o.Value = "-1"
	if _, err := o.ID(); err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{in: "one two three four", width: 9, want: "one two\nthree\nfour"},
		{in: "  one\t two  ", width: 80, want: "one two"},
		// Width is counted in cells, not bytes.
		{in: "ünï cödé", width: 8, want: "ünï cödé"},
	}
	for _, tc := range cases {
		if got := Wrap(tc.in, tc.width); got != tc.want {
			t.Fatalf("Wrap(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
