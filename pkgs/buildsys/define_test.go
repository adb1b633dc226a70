package buildsys

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rotisserie/eris"
)

func TestDefinesKeepInsertionOrder(t *testing.T) {
	var ds Defines
	ds.Set("LIBRARY_NAME", "foo")
	ds.Set("PY_LIBRARY_NAME", "foo_main")
	ds.Set("A", "1")

	want := []string{"-DLIBRARY_NAME=foo", "-DPY_LIBRARY_NAME=foo_main", "-DA=1"}
	if got := ds.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}
}

func TestDefinesSetReplacesInPlace(t *testing.T) {
	var ds Defines
	ds.Set("A", "1")
	ds.Set("B", "2")
	ds.Set("A", "3")

	if len(ds) != 2 {
		t.Fatalf("len = %d, want 2", len(ds))
	}
	if ds[0].Key != "A" || ds[0].Value != "3" {
		t.Fatalf("ds[0] = %+v, want A=3", ds[0])
	}
	if v, ok := ds.Get("B"); !ok || v != "2" {
		t.Fatalf("Get(B) = %q, %v", v, ok)
	}
	if _, ok := ds.Get("C"); ok {
		t.Fatal("Get(C) found a missing key")
	}
}

func TestDefinesMerge(t *testing.T) {
	ds := Defines{{Key: "A", Value: "1"}}
	ds.Merge(Defines{{Key: "B", Value: "2"}, {Key: "A", Value: "x"}})

	want := []string{"-DA=x", "-DB=2"}
	if got := ds.Args(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}
}

func TestEmptyDefinesHaveNoArgs(t *testing.T) {
	if args := (Defines{}).Args(); args != nil {
		t.Fatalf("Args() = %v, want nil", args)
	}
}

func TestPlatform(t *testing.T) {
	win := Platform{OS: "windows", Arch: Arch64}
	if !win.IsWindows() {
		t.Fatal("windows platform not detected")
	}
	if got := win.String(); got != "windows/64bit" {
		t.Fatalf("String() = %q", got)
	}
	if (Platform{OS: "linux", Arch: Arch64}).IsWindows() {
		t.Fatal("linux reported as windows")
	}
}

func TestWrappedSentinelsMatch(t *testing.T) {
	err := eris.Wrapf(ErrConfiguration, "MAX_JOBS=%q", "many")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("errors.Is(%v, ErrConfiguration) = false", err)
	}
	if errors.Is(err, ErrFilesystem) {
		t.Fatal("configuration error matched ErrFilesystem")
	}
}
