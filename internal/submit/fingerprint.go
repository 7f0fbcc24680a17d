package submit

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/hyj0824/ojAssistant/client"
)

// Fingerprint maps filename to the SHA-256 digest of its content. Two
// submissions are the same iff their fingerprints are equal.
type Fingerprint map[string]string

// FingerprintFiles digests a filename -> source map.
func FingerprintFiles(files map[string]string) Fingerprint {
	fp := make(Fingerprint, len(files))
	for name, content := range files {
		sum := sha256.Sum256([]byte(content))
		fp[name] = hex.EncodeToString(sum[:])
	}
	return fp
}

// Equal reports whether both fingerprints cover the same filename set
// with identical digests. Any extra, missing, or changed file breaks
// equality.
func (fp Fingerprint) Equal(other Fingerprint) bool {
	if len(fp) != len(other) {
		return false
	}
	for name, sum := range fp {
		if other[name] != sum {
			return false
		}
	}
	return true
}

// Duplicate describes the prior submission that an unchanged candidate
// would repeat.
type Duplicate struct {
	RecordID    int
	SubmittedAt string
}

// DetectDuplicate compares candidate files against the most recent
// historical record. It reports a duplicate only when that record
// carries its source code and matches file-for-file; if the platform
// omitted the code field, detection never fires.
func DetectDuplicate(files map[string]string, records []client.SubmissionRecord) *Duplicate {
	if len(files) == 0 || len(records) == 0 {
		return nil
	}
	latest := records[0]
	if len(latest.Code) == 0 {
		return nil
	}
	if !FingerprintFiles(files).Equal(FingerprintFiles(latest.Code)) {
		return nil
	}
	return &Duplicate{
		RecordID:    latest.RecordID,
		SubmittedAt: latest.SubmissionTime,
	}
}
