package installer

import "errors"

// Sentinel errors for the failure modes callers may need to distinguish.
// They are always returned wrapped with additional context; test with
// errors.Is.
var (
	// ErrClassification indicates a filename extension that is not valid
	// UTF-8 text, so the asset cannot be classified.
	ErrClassification = errors.New("cannot classify asset extension")

	// ErrUnsupportedCompression indicates a tarball whose compression
	// extension is not one of the recognized compressor tags.
	ErrUnsupportedCompression = errors.New("unsupported tarball compression")

	// ErrNoMatchingEntry indicates an archive containing no entry that
	// matches the requested executable name, exactly or partially.
	ErrNoMatchingEntry = errors.New("no matching entry in archive")

	// ErrNotAnArchive indicates a whole-archive install attempted on an
	// asset that is not a tarball or zip file.
	ErrNotAnArchive = errors.New("asset is not an archive")

	// ErrInstallDirectory indicates an install path with no parent
	// directory component to create.
	ErrInstallDirectory = errors.New("install path has no parent directory")

	// ErrEmptyArchive indicates an archive that unpacked to nothing, which
	// leaves the flattening heuristic with no entries to inspect.
	ErrEmptyArchive = errors.New("archive contained no entries")
)
