package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyj0824/ojAssistant/client"
)

func record(code map[string]string) client.SubmissionRecord {
	return client.SubmissionRecord{
		RecordID:       42,
		ResultState:    client.ResultWrongAnswer,
		SubmissionTime: "2026-03-01 12:00:00",
		Code:           code,
	}
}

func TestDetectDuplicateIdenticalFiles(t *testing.T) {
	files := map[string]string{
		"Main.java":   "public class Main {}",
		"Helper.java": "class Helper {}",
	}
	records := []client.SubmissionRecord{record(map[string]string{
		"Main.java":   "public class Main {}",
		"Helper.java": "class Helper {}",
	})}

	dup := DetectDuplicate(files, records)
	require.NotNil(t, dup)
	assert.Equal(t, 42, dup.RecordID)
	assert.Equal(t, "2026-03-01 12:00:00", dup.SubmittedAt)
}

func TestDetectDuplicateSingleByteChange(t *testing.T) {
	files := map[string]string{"Main.java": "public class Main {}"}
	records := []client.SubmissionRecord{record(map[string]string{
		"Main.java": "public class Main {}\n",
	})}

	assert.Nil(t, DetectDuplicate(files, records))
}

func TestDetectDuplicateDifferentFilenameSet(t *testing.T) {
	content := "public class Main {}"

	tests := []struct {
		name  string
		files map[string]string
		prior map[string]string
	}{
		{
			"extra file in candidate",
			map[string]string{"Main.java": content, "Helper.java": "x"},
			map[string]string{"Main.java": content},
		},
		{
			"missing file in candidate",
			map[string]string{"Main.java": content},
			map[string]string{"Main.java": content, "Helper.java": "x"},
		},
		{
			"same content under another name",
			map[string]string{"Other.java": content},
			map[string]string{"Main.java": content},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []client.SubmissionRecord{record(tt.prior)}
			assert.Nil(t, DetectDuplicate(tt.files, records))
		})
	}
}

func TestDetectDuplicateNoHistoricalCode(t *testing.T) {
	files := map[string]string{"Main.java": "public class Main {}"}

	// The platform may omit the code field; detection must stay quiet.
	assert.Nil(t, DetectDuplicate(files, []client.SubmissionRecord{record(nil)}))
	assert.Nil(t, DetectDuplicate(files, nil))
}

func TestDetectDuplicateChecksLatestRecordOnly(t *testing.T) {
	files := map[string]string{"Main.java": "v2"}
	records := []client.SubmissionRecord{
		record(map[string]string{"Main.java": "v3"}),
		record(map[string]string{"Main.java": "v2"}), // older, identical
	}

	assert.Nil(t, DetectDuplicate(files, records))
}

func TestFingerprintEqual(t *testing.T) {
	a := FingerprintFiles(map[string]string{"A.java": "x", "B.java": "y"})
	b := FingerprintFiles(map[string]string{"B.java": "y", "A.java": "x"})
	c := FingerprintFiles(map[string]string{"A.java": "x"})

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, c.Equal(a))
}
