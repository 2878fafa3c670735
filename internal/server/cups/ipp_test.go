package cups

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeResponse(status uint16, requestID uint32, groups ...ippGroup) []byte {
	buf := new(bytes.Buffer)
	buf.Write([]byte{2, 0})
	binary.Write(buf, binary.BigEndian, status)
	binary.Write(buf, binary.BigEndian, requestID)

	buf.WriteByte(IPP_TAG_OPERATION)
	writeAttribute(buf, IPP_TAG_CHARSET, "attributes-charset", []byte("utf-8"))
	writeAttribute(buf, IPP_TAG_LANGUAGE, "attributes-natural-language", []byte("en"))

	for _, g := range groups {
		buf.WriteByte(g.Tag)
		for _, a := range g.Attrs {
			writeIPPAttribute(buf, a)
		}
	}
	buf.WriteByte(IPP_TAG_END)
	return buf.Bytes()
}

func TestBuildIPPRequest_RoundTrip(t *testing.T) {
	b := NewBackend("http://localhost:631", nil, nil)
	buf := b.buildIPPRequest(ippRequest{
		Operation: IPP_OP_GET_JOBS,
		RequestID: 7,
		OpAttrs: []ippAttribute{
			stringAttr(IPP_TAG_URI, "printer-uri", "ipp://localhost:631/printers/office"),
			boolAttr("my-jobs", false),
			stringAttr(IPP_TAG_KEYWORD, "requested-attributes", "job-id", "job-state"),
		},
		JobAttrs: []ippAttribute{intAttr(IPP_TAG_INTEGER, "copies", 2)},
	})

	req, err := parseIPPResponse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint16(IPP_OP_GET_JOBS), req.Status)
	assert.Equal(t, uint32(7), req.RequestID)
	require.Len(t, req.Groups, 2)

	op := req.Groups[0]
	assert.Equal(t, byte(IPP_TAG_OPERATION), op.Tag)
	names := []string{}
	for _, a := range op.Attrs {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"attributes-charset", "attributes-natural-language", "printer-uri", "my-jobs", "requested-attributes"}, names)

	attr, ok := op.get("requested-attributes")
	require.True(t, ok)
	assert.Equal(t, []interface{}{"job-id", "job-state"}, attr.Values)

	attr, _ = op.get("my-jobs")
	assert.Equal(t, []interface{}{false}, attr.Values)

	job := req.Groups[1]
	assert.Equal(t, byte(IPP_TAG_JOB), job.Tag)
	copies, ok := job.get("copies")
	require.True(t, ok)
	n, ok := copies.Int()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestParseIPPResponse_Truncated(t *testing.T) {
	_, err := parseIPPResponse([]byte{2, 0, 0})
	assert.Error(t, err)

	data := encodeResponse(IPP_STATUS_OK, 1, ippGroup{
		Tag:   IPP_TAG_PRINTER,
		Attrs: []ippAttribute{stringAttr(IPP_TAG_NAME, "printer-name", "office")},
	})
	_, err = parseIPPResponse(data[:len(data)-4])
	assert.Error(t, err)
}

func TestParseIPPResponse_SkipsCollections(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.Write([]byte{2, 0, 0, 0, 0, 0, 0, 1})
	buf.WriteByte(IPP_TAG_PRINTER)
	writeAttribute(buf, IPP_TAG_BEGIN_COLLECTION, "media-col-default", nil)
	writeAttribute(buf, IPP_TAG_MEMBERNAME, "", []byte("media-size"))
	writeAttribute(buf, IPP_TAG_BEGIN_COLLECTION, "", nil)
	writeAttribute(buf, IPP_TAG_MEMBERNAME, "", []byte("x-dimension"))
	writeIntegerAttribute(buf, IPP_TAG_INTEGER, "", 21000)
	writeAttribute(buf, IPP_TAG_END_COLLECTION, "", nil)
	writeAttribute(buf, IPP_TAG_END_COLLECTION, "", nil)
	writeAttribute(buf, IPP_TAG_NAME, "printer-name", []byte("office"))
	buf.WriteByte(IPP_TAG_END)

	resp, err := parseIPPResponse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)
	require.Len(t, resp.Groups[0].Attrs, 1)
	assert.Equal(t, "printer-name", resp.Groups[0].Attrs[0].Name)
}

func TestParseIPPValue(t *testing.T) {
	date := []byte{0x07, 0xE7, 11, 14, 23, 13, 20, 0, '+', 1, 0}
	got, ok := parseIPPValue(IPP_TAG_DATE, date).(time.Time)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), got.Unix())

	assert.Equal(t, -1, parseIPPValue(IPP_TAG_INTEGER, []byte{0xff, 0xff, 0xff, 0xff}))
	assert.Equal(t, true, parseIPPValue(IPP_TAG_BOOLEAN, []byte{1}))
	assert.Equal(t, "600x600dpi", parseIPPValue(IPP_TAG_RESOLUTION, []byte{0, 0, 2, 0x58, 0, 0, 2, 0x58, 3}))
	assert.Equal(t, "1-5", parseIPPValue(IPP_TAG_RANGE, []byte{0, 0, 0, 1, 0, 0, 0, 5}))
	assert.Equal(t, "Bonjour", parseIPPValue(IPP_TAG_TEXT_LANG, []byte{0, 2, 'f', 'r', 0, 7, 'B', 'o', 'n', 'j', 'o', 'u', 'r'}))
	assert.Equal(t, "idle", parseIPPValue(IPP_TAG_KEYWORD, []byte("idle")))
}

func TestIPPAttribute_String(t *testing.T) {
	a := ippAttribute{Name: "printer-state-reasons", Values: []interface{}{"none", 4, true, time.Unix(1700000000, 0)}}
	assert.Equal(t, "none,4,true,1700000000", a.String())
}

func TestIPPError(t *testing.T) {
	err := &ippError{Status: IPP_STATUS_ERROR_NOT_FOUND, Message: "The printer or class does not exist."}
	assert.Equal(t, "client-error-not-found: The printer or class does not exist.", err.Error())
	assert.True(t, isIPPStatus(err, IPP_STATUS_ERROR_NOT_FOUND))
	assert.False(t, isIPPStatus(err, IPP_STATUS_ERROR_NOT_POSSIBLE))

	assert.Equal(t, "IPP error 0x04ff", (&ippError{Status: 0x04ff}).Error())
}
