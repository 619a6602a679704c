package ocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner fakes external binaries keyed by command name.
type stubRunner struct {
	calls []string
	run   func(name string, args []string) (stdout, stderr []byte, err error)
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, name)
	return s.run(name, args)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExtractor(r Runner) *Extractor {
	return &Extractor{
		cfg: Config{
			Pdftotext: "pdftotext",
			Pdftoppm:  "pdftoppm",
			Pdfinfo:   "pdfinfo",
			Tesseract: "tesseract",
			DPI:       150,
			MaxPages:  2,
		},
		lang:   "spa+eng",
		runner: r,
		logger: discardLogger(),
	}
}

func TestExtractDigitalLayerWins(t *testing.T) {
	digital := "DNI: 76248882 EXAMEN MEDICO OCUPACIONAL PREOCUPACIONAL\fFECHA DE EXAMEN: 31.01.26"
	stub := &stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
		require.Equal(t, "pdftotext", name)
		assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "doc.pdf", "-"}, args)
		return []byte(digital), nil, nil
	}}

	res, err := newTestExtractor(stub).Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, digital, res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []string{"pdftotext"}, stub.calls)
}

func TestExtractFallsBackToOCR(t *testing.T) {
	page := 0
	stub := &stubRunner{}
	stub.run = func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftotext":
			return []byte("corto"), nil, nil // below the threshold
		case "pdftoppm":
			prefix := args[len(args)-1]
			for i := 1; i <= 2; i++ {
				require.NoError(t, os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644))
			}
			return nil, nil, nil
		case "tesseract":
			page++
			assert.Equal(t, []string{"stdout", "-l", "spa+eng"}, args[1:])
			return []byte(fmt.Sprintf("PAGINA %d", page)), nil, nil
		}
		return nil, nil, fmt.Errorf("unexpected command %s", name)
	}

	res, err := newTestExtractor(stub).Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t, 2, res.Pages)
	// Digital text, however short, stays ahead of the OCR text.
	assert.Equal(t, "cortoPAGINA 1\n\f\nPAGINA 2", res.Text)
	assert.Equal(t, []string{"pdftotext", "pdftoppm", "tesseract", "tesseract"}, stub.calls)
}

func TestExtractSurfacesFailure(t *testing.T) {
	stub := &stubRunner{run: func(name string, args []string) ([]byte, []byte, error) {
		return nil, []byte("boom"), fmt.Errorf("%s failed", name)
	}}

	_, err := newTestExtractor(stub).Extract(context.Background(), "broken.pdf")
	assert.Error(t, err)
}

func TestExtractOCRPageErrorIsWarning(t *testing.T) {
	page := 0
	stub := &stubRunner{}
	stub.run = func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftotext":
			return nil, nil, nil
		case "pdftoppm":
			prefix := args[len(args)-1]
			for i := 1; i <= 2; i++ {
				require.NoError(t, os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644))
			}
			return nil, nil, nil
		case "tesseract":
			page++
			if page == 1 {
				return nil, nil, fmt.Errorf("bad page")
			}
			return []byte("PAGINA DOS"), nil, nil
		}
		return nil, nil, fmt.Errorf("unexpected command %s", name)
	}

	res, err := newTestExtractor(stub).Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "PAGINA DOS", res.Text)
	assert.NotEmpty(t, res.Warnings)
}

func TestProbeLanguage(t *testing.T) {
	probe := func(out string, err error) string {
		stub := &stubRunner{run: func(string, []string) ([]byte, []byte, error) {
			return []byte(out), nil, err
		}}
		e := newTestExtractor(stub)
		return e.probeLanguage(context.Background())
	}

	assert.Equal(t, "spa+eng", probe("List of available languages (3):\neng\nosd\nspa\n", nil))
	assert.Equal(t, "eng", probe("List of available languages (2):\neng\nosd\n", nil))
	// Probe failure keeps the optimistic default.
	assert.Equal(t, "spa+eng", probe("", fmt.Errorf("no tesseract")))
}

func TestNormalize(t *testing.T) {
	in := "EXAMEN\tMEDICO\r\nDNI:   76248882\r\n\r\n\r\n\r\n____\nFECHA: 31.01.26   \n---------\nFIN"
	got := Normalize(in)

	assert.Equal(t, "EXAMEN MEDICO\nDNI: 76248882\n\n\nFECHA: 31.01.26\n\nFIN", got)
	// Digits never change: identity numbers and dates depend on them.
	assert.Contains(t, got, "76248882")
	assert.Contains(t, got, "31.01.26")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 8))

	got := truncate(strings.Repeat("e", stderrLogCap+100), stderrLogCap)
	assert.Len(t, got, stderrLogCap+len("...(truncated)"))
	assert.True(t, strings.HasSuffix(got, "...(truncated)"))
}

func TestNonWhitespaceLen(t *testing.T) {
	assert.Equal(t, 0, nonWhitespaceLen("  \n\t "))
	assert.Equal(t, 8, nonWhitespaceLen(" 7624 8882 "))
	assert.Equal(t, 4, nonWhitespaceLen(strings.Repeat("a ", 4)))
}
