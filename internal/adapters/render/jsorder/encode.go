package jsorder

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
)

type Encoder struct{}

var _ ports.PresentationEncoder = Encoder{}

func (Encoder) EncodePresentation(descriptors []domain.Descriptor) ([]byte, error) {
	return Encode(descriptors), nil
}

// Encode serializes descriptors as the trial_stim array the jsPsych task loads.
func Encode(descriptors []domain.Descriptor) []byte {
	var buf bytes.Buffer
	buf.WriteString("var trial_stim=[\n")
	for i, d := range descriptors {
		fmt.Fprintf(&buf, "  {trial: %d, image: '%s', type: %d, correct_resp: %d, lag: %d}",
			d.Trial, escape(d.Image), int(d.Type), int(d.CorrectResp), d.Lag)
		if i < len(descriptors)-1 {
			buf.WriteString(",\n")
		} else {
			buf.WriteString("\n")
		}
	}
	buf.WriteString("]\n")
	return buf.Bytes()
}

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func escape(value string) string {
	return escaper.Replace(value)
}
