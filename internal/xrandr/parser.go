package xrandr

import (
	"crypto/md5" //nolint:gosec // fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	outputHeaderRegex = regexp.MustCompile(`^(\S+) (connected|disconnected|unknown connection)(.*)$`)
	geometryRegex     = regexp.MustCompile(`(\d+x\d+)\+(\d+)\+(\d+)`)
	modeLineRegex     = regexp.MustCompile(`^\s+(\d+x\d+[a-z]*)\s+\(0x[0-9a-fA-F]+\)`)
	refreshLineRegex  = regexp.MustCompile(`^\s+v:.*clock\s+([\d.]+)Hz`)
	edidChunkRegex    = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	rotations         = []string{"normal", "left", "inverted", "right"}
)

// parseQuery parses `xrandr --query --verbose` output. Only the fields the
// matcher and the profile dump care about are extracted: connection state,
// EDID fingerprint, supported and preferred modes, current mode geometry.
func parseQuery(raw string) (Outputs, error) {
	outputs := Outputs{}
	var current *Output
	var currentMode string
	var edidHex strings.Builder
	inEdid := false

	flushEdid := func() {
		if current != nil && edidHex.Len() > 0 {
			current.EDID = fingerprintEdid(edidHex.String())
		}
		edidHex.Reset()
		inEdid = false
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}

		if header := outputHeaderRegex.FindStringSubmatch(line); header != nil && !strings.HasPrefix(line, " ") {
			flushEdid()
			current = parseHeader(header)
			outputs = append(outputs, current)
			currentMode = ""
			continue
		}

		if current == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if inEdid {
			if edidChunkRegex.MatchString(trimmed) {
				edidHex.WriteString(trimmed)
				continue
			}
			flushEdid()
		}
		if trimmed == "EDID:" {
			inEdid = true
			continue
		}

		if mode := modeLineRegex.FindStringSubmatch(line); mode != nil {
			currentMode = mode[1]
			if !slices.Contains(current.SupportedModes, currentMode) {
				current.SupportedModes = append(current.SupportedModes, currentMode)
			}
			if strings.Contains(line, "+preferred") {
				current.PreferredMode = currentMode
			}
			if strings.Contains(line, "*current") {
				current.CurrentMode = currentMode
			}
			continue
		}

		if refresh := refreshLineRegex.FindStringSubmatch(line); refresh != nil {
			if currentMode != "" && currentMode == current.CurrentMode && current.Rate == 0 {
				rate, err := strconv.ParseFloat(refresh[1], 64)
				if err != nil {
					return nil, fmt.Errorf("cant parse refresh rate %s: %w", refresh[1], err)
				}
				current.Rate = rate
			}
			continue
		}
	}
	flushEdid()

	if err := outputs.Validate(); err != nil {
		return nil, fmt.Errorf("xrandr query gave invalid outputs: %w", err)
	}
	logrus.WithField("outputs", len(outputs)).Debug("Parsed xrandr query")
	return outputs, nil
}

func parseHeader(header []string) *Output {
	output := &Output{
		Name:      header[1],
		Connected: header[2] == "connected",
		Rotation:  "normal",
	}

	rest := header[3]
	output.Primary = strings.Contains(rest, " primary")

	if geometry := geometryRegex.FindStringSubmatch(rest); geometry != nil {
		output.CurrentMode = geometry[1]
		output.Position = geometry[2] + "x" + geometry[3]
	}

	// rotation token sits between the geometry and the parenthesised list
	before, _, _ := strings.Cut(rest, "(")
	for _, field := range strings.Fields(before) {
		if slices.Contains(rotations, field) {
			output.Rotation = field
			break
		}
	}

	return output
}

// fingerprintEdid hashes the raw EDID hex dump into a short stable signature,
// which is what profile edid rules store.
func fingerprintEdid(edidHex string) string {
	sum := md5.Sum([]byte(strings.ToLower(edidHex))) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
