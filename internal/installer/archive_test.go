package installer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vemoo/ubi/internal/testutil"
)

func checkTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, want := range files {
		path := filepath.Join(root, rel)
		got, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("expected file %s: %v", rel, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s: got content %q, want %q", rel, got, want)
		}
	}
}

func TestArchiveInstallerFlattensSingleWrapperDir(t *testing.T) {
	entries := []testutil.Entry{
		{Name: "project-x86_64-linux/bin/project", Body: "xyz", Mode: 0o755},
		{Name: "project-x86_64-linux/README.md", Body: "docs", Mode: 0o644},
	}

	for _, assetName := range []string{"asset.tar.gz", "asset.tar", "asset.tar.xz", "asset.zip"} {
		t.Run(assetName, func(t *testing.T) {
			assetPath := filepath.Join(t.TempDir(), assetName)
			if assetName == "asset.zip" {
				testutil.WriteZip(t, assetPath, entries)
			} else {
				testutil.WriteTarball(t, assetPath, entries)
			}

			for _, subdir := range []bool{false, true} {
				root := filepath.Join(t.TempDir(), "project")
				if subdir {
					root = filepath.Join(t.TempDir(), "subdir", "project")
				}

				inst := NewArchiveInstaller(root, nil)
				if err := inst.Install(NewAsset(assetPath)); err != nil {
					t.Fatalf("Install: %v", err)
				}

				checkTree(t, root, map[string]string{
					"bin/project": "xyz",
					"README.md":   "docs",
				})
				if _, err := os.Stat(filepath.Join(root, "project-x86_64-linux")); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("wrapper directory was not removed, stat returned %v", err)
				}
			}
		})
	}
}

func TestArchiveInstallerNoSharedRootIsNotFlattened(t *testing.T) {
	entries := []testutil.Entry{
		{Name: "bin/project", Body: "xyz", Mode: 0o755},
		{Name: "README.md", Body: "docs", Mode: 0o644},
	}

	for _, assetName := range []string{"asset.tar.gz", "asset.zip"} {
		t.Run(assetName, func(t *testing.T) {
			assetPath := filepath.Join(t.TempDir(), assetName)
			if assetName == "asset.zip" {
				testutil.WriteZip(t, assetPath, entries)
			} else {
				testutil.WriteTarball(t, assetPath, entries)
			}

			root := filepath.Join(t.TempDir(), "project")
			inst := NewArchiveInstaller(root, nil)
			if err := inst.Install(NewAsset(assetPath)); err != nil {
				t.Fatalf("Install: %v", err)
			}

			checkTree(t, root, map[string]string{
				"bin/project": "xyz",
				"README.md":   "docs",
			})
		})
	}
}

func TestArchiveInstallerOneFileInArchiveRoot(t *testing.T) {
	// A tarball holding exactly one file at its root computes a
	// "common prefix" set with one member equal to the file itself;
	// the file check must win and skip flattening.
	assetPath := filepath.Join(t.TempDir(), "asset.tar.gz")
	testutil.WriteTarball(t, assetPath, []testutil.Entry{
		{Name: "project", Body: "xyz", Mode: 0o755},
	})

	root := filepath.Join(t.TempDir(), "project")
	inst := NewArchiveInstaller(root, nil)
	if err := inst.Install(NewAsset(assetPath)); err != nil {
		t.Fatalf("Install: %v", err)
	}
	checkTree(t, root, map[string]string{"project": "xyz"})
}

func TestArchiveInstallerTwoTopLevelDirsAreKept(t *testing.T) {
	assetPath := filepath.Join(t.TempDir(), "asset.tar.gz")
	testutil.WriteTarball(t, assetPath, []testutil.Entry{
		{Name: "bin/project", Body: "xyz", Mode: 0o755},
		{Name: "share/manual.txt", Body: "docs", Mode: 0o644},
	})

	root := filepath.Join(t.TempDir(), "project")
	inst := NewArchiveInstaller(root, nil)
	if err := inst.Install(NewAsset(assetPath)); err != nil {
		t.Fatalf("Install: %v", err)
	}
	checkTree(t, root, map[string]string{
		"bin/project":      "xyz",
		"share/manual.txt": "docs",
	})
}

func TestArchiveInstallerPreservesTarModes(t *testing.T) {
	assetPath := filepath.Join(t.TempDir(), "asset.tar.gz")
	testutil.WriteTarball(t, assetPath, []testutil.Entry{
		{Name: "wrapper/bin/tool", Body: "xyz", Mode: 0o755},
		{Name: "wrapper/data.txt", Body: "data", Mode: 0o644},
	})

	root := filepath.Join(t.TempDir(), "project")
	inst := NewArchiveInstaller(root, nil)
	if err := inst.Install(NewAsset(assetPath)); err != nil {
		t.Fatalf("Install: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "bin", "tool"))
	if err != nil {
		t.Fatalf("stat extracted tool: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("tool mode %v lost its executable bit", info.Mode().Perm())
	}
}

func TestArchiveInstallerRejectsNonArchives(t *testing.T) {
	tmpDir := t.TempDir()

	gzPath := filepath.Join(tmpDir, "project.gz")
	testutil.WriteGzipFile(t, gzPath, "xyz")
	exePath := filepath.Join(tmpDir, "project.exe")
	testutil.WriteFile(t, exePath, "xyz")
	barePath := filepath.Join(tmpDir, "project")
	testutil.WriteFile(t, barePath, "xyz")

	for _, assetPath := range []string{gzPath, exePath, barePath} {
		inst := NewArchiveInstaller(filepath.Join(t.TempDir(), "project"), nil)
		err := inst.Install(NewAsset(assetPath))
		if !errors.Is(err, ErrNotAnArchive) {
			t.Errorf("%s: got %v, want ErrNotAnArchive", filepath.Base(assetPath), err)
		}
	}
}

func TestArchiveInstallerEmptyArchive(t *testing.T) {
	assetPath := filepath.Join(t.TempDir(), "asset.tar.gz")
	testutil.WriteTarball(t, assetPath, nil)

	inst := NewArchiveInstaller(filepath.Join(t.TempDir(), "project"), nil)
	err := inst.Install(NewAsset(assetPath))
	if !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("got %v, want ErrEmptyArchive", err)
	}
}

func TestArchiveInstallerRejectsPathTraversal(t *testing.T) {
	assetPath := filepath.Join(t.TempDir(), "asset.tar.gz")
	testutil.WriteTarball(t, assetPath, []testutil.Entry{
		{Name: "../evil", Body: "xyz", Mode: 0o644},
	})

	inst := NewArchiveInstaller(filepath.Join(t.TempDir(), "project"), nil)
	if err := inst.Install(NewAsset(assetPath)); err == nil {
		t.Fatal("expected an error for an entry escaping the install root")
	}
}
