package itunes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/xeptore/itms/errutil"
	"github.com/xeptore/itms/must"
)

// Debug dumps are best-effort diagnostics: they log their own failures
// and never fail the fetch that produced them.

func (s *Session) dumpDir() string {
	if s.cfg.DumpDir != "" {
		return s.cfg.DumpDir
	}
	return os.TempDir()
}

func (s *Session) debugDumpDocument(pageURL string, doc []byte) {
	if !s.cfg.Debug {
		return
	}
	name := fmt.Sprintf("itms-%s-%d.xml", sanitizeURL(pageURL), time.Now().UnixNano())
	path := filepath.Join(s.dumpDir(), name)
	if err := os.WriteFile(path, doc, 0o0600); nil != err {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to dump decoded document")
		return
	}
	s.logger.Debug().Str("path", path).Msg("Dumped decoded document")
}

func (s *Session) debugDumpRecord(kind, id string, record any) {
	if !s.cfg.Debug {
		return
	}
	b, err := json.MarshalIndent(record, "", "  ")
	if nil != err {
		s.logger.Warn().Err(err).Str("kind", kind).Str("id", id).Msg("Failed to encode extracted record")
		return
	}
	path := filepath.Join(s.dumpDir(), fmt.Sprintf("itms-%s-%s-%d.json", kind, id, time.Now().UnixNano()))
	if err := os.WriteFile(path, b, 0o0600); nil != err {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to dump extracted record")
	}
}

// debugDumpError writes a full flaw report for transport failures that
// carry one; plain errors are already fully described by their message.
func (s *Session) debugDumpError(pageURL string, err error) {
	if !s.cfg.Debug || !errutil.IsFlaw(err) {
		return
	}
	b, yamlErr := errutil.FlawToYAML(must.BeFlaw(err))
	if nil != yamlErr {
		s.logger.Warn().Err(yamlErr).Msg("Failed to encode flaw report")
		return
	}
	path := filepath.Join(s.dumpDir(), fmt.Sprintf("itms-flaw-%s-%d.yaml", sanitizeURL(pageURL), time.Now().UnixNano()))
	if writeErr := os.WriteFile(path, b, 0o0600); nil != writeErr {
		s.logger.Warn().Err(writeErr).Str("path", path).Msg("Failed to dump flaw report")
	}
}

func sanitizeURL(pageURL string) string {
	r := strings.NewReplacer("https://", "", "http://", "", "/", "_", "?", "_", "&", "_", "=", "-")
	return r.Replace(pageURL)
}
