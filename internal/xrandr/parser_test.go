package xrandr

import (
	"testing"

	"github.com/randrctl/randrctl/internal/profile"
	"github.com/randrctl/randrctl/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const verboseQueryFixture = `Screen 0: minimum 320 x 200, current 3840 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (0x47) normal (normal left inverted right x axis y axis) 344mm x 194mm
	Identifier: 0x42
	Timestamp:  54184782
	Subpixel:   unknown
	EDID:
		00ffffffffffff004d10cc1400000000
		2c1d0104a52213780ede50a3544c9926
		0f505400000001010101010101010101
		010101010101cd9180a0c00834703020
		350058c21000001a000000fe004c4720
	non-desktop: 0
		supported: 0, 1
  1920x1080 (0x47) 148.500MHz +HSync -VSync *current +preferred
        h: width  1920 start 2008 end 2052 total 2200 skew    0 clock  67.50KHz
        v: height 1080 start 1084 end 1089 total 1125           clock  60.00Hz
  1680x1050 (0x48) 146.250MHz -HSync +VSync
        h: width  1680 start 1784 end 1960 total 2240 skew    0 clock  65.29KHz
        v: height 1050 start 1053 end 1059 total 1089           clock  59.95Hz
  1280x720 (0x49) 74.250MHz +HSync +VSync
        h: width  1280 start 1390 end 1430 total 1650 skew    0 clock  45.00KHz
        v: height  720 start  725 end  730 total  750           clock  60.00Hz
DP-1 connected 1920x1080+1920+0 left (0x47) left (normal left inverted right x axis y axis) 527mm x 296mm
	Identifier: 0x43
	Timestamp:  54184782
	EDID:
		00ffffffffffff0010acb8a042524530
		2c190104a5331d783ae245a8554da328
	non-desktop: 0
  1920x1080 (0x47) 148.500MHz +HSync +VSync *current
        h: width  1920 start 2008 end 2052 total 2200 skew    0 clock  67.50KHz
        v: height 1080 start 1084 end 1089 total 1125           clock  60.00Hz
  1920x1080 (0x4a) 174.500MHz +HSync -VSync +preferred
        h: width  1920 start 2008 end 2052 total 2080 skew    0 clock  83.89KHz
        v: height 1080 start 1083 end 1088 total 1119           clock  74.97Hz
HDMI-1 disconnected (normal left inverted right x axis y axis)
	Identifier: 0x44
`

func TestParseQuery(t *testing.T) {
	outputs, err := parseQuery(verboseQueryFixture)
	require.NoError(t, err)
	require.Len(t, outputs, 3)

	edp := outputs[0]
	assert.Equal(t, "eDP-1", edp.Name)
	assert.True(t, edp.Connected)
	assert.True(t, edp.Primary)
	assert.Equal(t, "1920x1080", edp.CurrentMode)
	assert.Equal(t, "1920x1080", edp.PreferredMode)
	assert.Equal(t, "0x0", edp.Position)
	assert.Equal(t, "normal", edp.Rotation)
	assert.Equal(t, []string{"1920x1080", "1680x1050", "1280x720"}, edp.SupportedModes)
	assert.InDelta(t, 60.0, edp.Rate, 0.01)
	assert.NotEmpty(t, edp.EDID)
	assert.Len(t, edp.EDID, 32, "edid is an md5 fingerprint")

	dp := outputs[1]
	assert.Equal(t, "DP-1", dp.Name)
	assert.True(t, dp.Connected)
	assert.False(t, dp.Primary)
	assert.Equal(t, "1920x0", dp.Position)
	assert.Equal(t, "left", dp.Rotation)
	assert.Equal(t, "1920x1080", dp.CurrentMode)
	assert.Equal(t, "1920x1080", dp.PreferredMode)
	assert.Equal(t, []string{"1920x1080"}, dp.SupportedModes)
	assert.NotEqual(t, edp.EDID, dp.EDID, "different hardware gives different fingerprints")

	hdmi := outputs[2]
	assert.Equal(t, "HDMI-1", hdmi.Name)
	assert.False(t, hdmi.Connected)
}

func TestParseQuery_ConnectedFilter(t *testing.T) {
	outputs, err := parseQuery(verboseQueryFixture)
	require.NoError(t, err)

	connected := outputs.Connected()
	require.Len(t, connected, 2)
	assert.Equal(t, "eDP-1", connected[0].Name)
	assert.Equal(t, "DP-1", connected[1].Name)
}

func TestFingerprintEdid_CaseInsensitive(t *testing.T) {
	assert.Equal(t, fingerprintEdid("00FFAB"), fingerprintEdid("00ffab"))
}

func TestComposeArgs(t *testing.T) {
	p := &profile.Profile{
		Name: "docked",
		Outputs: []*profile.OutputSpec{
			{Name: "DP-1", Mode: "2560x1440", Position: "0x0", Rotation: "normal", Rate: utils.Float64Ptr(60), Primary: true},
			{Name: "eDP-1", Mode: "1920x1080", Position: "2560x0"},
		},
	}
	connected := Outputs{
		{Name: "DP-1", Connected: true},
		{Name: "eDP-1", Connected: true},
		{Name: "HDMI-1", Connected: true},
	}

	args := composeArgs(p, connected)

	assert.Equal(t, []string{
		"--output", "DP-1", "--mode", "2560x1440", "--pos", "0x0", "--rotate", "normal", "--rate", "60", "--primary",
		"--output", "eDP-1", "--mode", "1920x1080", "--pos", "2560x0",
		"--output", "HDMI-1", "--off",
	}, args)
}
