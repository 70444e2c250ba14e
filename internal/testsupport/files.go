package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// MasterCSV is a small registry covering every lookup tier: clean-name
// overrides, channel values, and a raw short identifier (7077) that the
// engine must standardize wherever it surfaces.
const MasterCSV = `Payer ID,Payer Name,Clean_payer Name,Source_File,Plan Type
7077,TriWest Healthcare Alliance,,AVAILITY,TRICARE
00123,Acme Health Plan,ACME HEALTH,EMDEON,HMO
00456,United Medical Resources,,AVAILITY,PPO
00789,Medicaid of Texas,,EMDEON,MEDICAID
`

// WriteCSV writes content to path, creating parent directories as needed.
func WriteCSV(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
