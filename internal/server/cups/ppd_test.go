package cups

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePPD = `*PPD-Adobe: "4.3"
*% comment line
*ModelName: "Office Laser"
*OpenUI *PageSize/Media Size: PickOne
*OrderDependency: 10 AnySetup *PageSize
*DefaultPageSize: Letter
*PageSize Letter/US Letter: "<</PageSize[612 792]>>setpagedevice"
*PageSize A4/A4: "<</PageSize[595 842]>>setpagedevice"
*PageSize Legal/US Legal: "<</PageSize[612 1008]>>setpagedevice"
*CloseUI: *PageSize
*OpenUI *ColorModel/Color Mode: PickOne
*DefaultColorModel: Gray
*ColorModel Gray/Grayscale: ""
*ColorModel RGB/Color: ""
*CloseUI: *ColorModel
*JCLOpenUI *JCLToner/Toner Save: Boolean
*DefaultJCLToner: False
*JCLToner True/On: "@PJL SET ECONOMODE=ON"
*JCLToner False/Off: "@PJL SET ECONOMODE=OFF"
*JCLCloseUI: *JCLToner
*PageRegion Letter: ""
`

func TestParsePPD(t *testing.T) {
	opts, err := parsePPD(strings.NewReader(samplePPD))
	require.NoError(t, err)

	assert.Len(t, opts, 3)
	assert.Equal(t, map[string]bool{"Letter": true, "A4": false, "Legal": false}, opts["PageSize"])
	assert.Equal(t, map[string]bool{"Gray": true, "RGB": false}, opts["ColorModel"])
	assert.Equal(t, map[string]bool{"True": false, "False": true}, opts["JCLToner"])
	assert.NotContains(t, opts, "PageRegion")
}

func TestParsePPD_DefaultNotAChoice(t *testing.T) {
	ppd := "*OpenUI *InputSlot: PickOne\r\n*DefaultInputSlot: Auto\r\n*InputSlot Tray1: \"\"\r\n*CloseUI: *InputSlot\r\n"

	opts, err := parsePPD(strings.NewReader(ppd))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Tray1": false}, opts["InputSlot"])
}

func TestPPDHelpers(t *testing.T) {
	assert.Equal(t, "PageSize", ppdOptionKey("*PageSize/Media Size: PickOne"))
	assert.Equal(t, "Duplex", ppdOptionKey("*Duplex: PickOne"))
	assert.Equal(t, "Letter", ppdChoice(`Letter/US Letter: "x"`))
	assert.Equal(t, "None", ppdChoice(`None: ""`))
}
