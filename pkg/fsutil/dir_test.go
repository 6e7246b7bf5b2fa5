package fsutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/majiru/inodefs"
)

const FilesPerDir = 20

func TestEntryNameAt(t *testing.T) {
	d := CreateDir("/")
	for i := 0; i < FilesPerDir; i++ {
		d.Append(CreateFile([]byte{}, 0644, fmt.Sprintf("test%d", i)))
	}
	for i := 0; i < FilesPerDir; i++ {
		name, err := d.EntryNameAt(int64(i))
		if err != nil {
			t.Errorf("EntryNameAt: %v", err)
		}
		if name != fmt.Sprintf("test%d", i) {
			t.Errorf("out of order entry %s", name)
		}
	}
	if _, err := d.EntryNameAt(FilesPerDir); err != inodefs.ErrNoEntry {
		t.Errorf("Expected %v got %v", inodefs.ErrNoEntry, err)
	}
	if _, err := d.ReadAt(make([]byte, 1), 0); err != inodefs.ErrIsDir {
		t.Errorf("Expected %v got %v", inodefs.ErrIsDir, err)
	}
}

func TestFind(t *testing.T) {
	d := CreateDir("/")
	for i := 0; i < FilesPerDir; i++ {
		d.Append(CreateFile([]byte{}, 0644, fmt.Sprintf("test%d", i)))
	}
	for i := 0; i < FilesPerDir; i++ {
		s := fmt.Sprintf("test%d", i)
		_, err := d.Find(s)
		if err != nil {
			t.Errorf("Find did not find file %s", s)
		}
	}
	s := fmt.Sprintf("test%d", FilesPerDir+1)
	if _, err := d.Find(s); err != os.ErrNotExist {
		t.Errorf("Found non existent file: %s", s)
	}
}

func testTree() *Dir {
	return CreateDir("/", CreateFile([]byte{}, 0644, "Test1"),
		CreateDir("Test2", CreateDir("Test3", CreateFile([]byte{}, 0644, "Test4"))),
		CreateDir("Test5", CreateFile([]byte{}, 0644, "Test5")))
}

func TestSearch(t *testing.T) {
	d := testTree()
	for i := 1; i < 6; i++ {
		s := fmt.Sprintf("Test%d", i)
		if _, err := d.Search(s); err != nil {
			t.Errorf("Search returned: %v for %s", err, s)
		}
	}
	if _, err := CreateDir("/").Search("chris"); err != os.ErrNotExist {
		t.Fatalf("expected %v got %v", os.ErrNotExist, err)
	}
}

func TestWalk(t *testing.T) {
	d := testTree()
	walk := func(s, name string) {
		n, err := d.Walk(s)
		if err != nil {
			t.Fatalf("%v when walking for %s", err, s)
		}
		if got := nameOf(n); got != name {
			t.Errorf("Expected %s, got %s for walk", name, got)
		}
	}
	walk("/", "/")
	walk("/Test1", "Test1")
	walk("/Test2/Test3", "Test3")
	walk("Test2//Test3/Test4", "Test4")
	walk("/Test5/Test5", "Test5")
}

func TestWalkErr(t *testing.T) {
	d := testTree()
	walkErr := func(s string, err error) {
		if _, e := d.Walk(s); e != err {
			t.Fatalf("expected %v got %v for %s", err, e, s)
		}
	}
	walkErr("/chris", os.ErrNotExist)
	walkErr("/Test5/Test5/chris", ErrCastDir)
	walkErr("/Test2/Test3/chris", os.ErrNotExist)
}

func TestWalkCastErr(t *testing.T) {
	d := testTree()
	if _, err := d.WalkForDir("/Test1"); err != ErrCastDir {
		t.Fatalf("got %v expected %v", err, ErrCastDir)
	}
	if _, err := d.WalkForFile("/Test2"); err != ErrCastFile {
		t.Fatalf("got %v expected %v", err, ErrCastFile)
	}
	if _, err := d.WalkForFile("/Test2/Test3/Test4"); err != nil {
		t.Fatal("WalkForFile:", err)
	}
	if _, err := d.WalkForDir("/bliss"); err != os.ErrNotExist {
		t.Fatalf("got %v expected %v", err, os.ErrNotExist)
	}
}

func TestCopyRemove(t *testing.T) {
	names := []string{"chris", "bliss", "danny", "test", "test2"}
	d := CreateDir("/")
	for _, n := range names {
		d.Append(CreateDir(n))
	}
	for i, n := range d.Copy() {
		if nameOf(n) != names[i] {
			t.Fatalf("expected %s got %s", names[i], nameOf(n))
		}
	}
	if err := d.Remove("danny"); err != nil {
		t.Fatal("Remove:", err)
	}
	if err := d.Remove("danny"); err != os.ErrNotExist {
		t.Fatalf("expected %v got %v", os.ErrNotExist, err)
	}
	if name, _ := d.EntryNameAt(2); name != "test" {
		t.Fatalf("expected test got %s", name)
	}
}
