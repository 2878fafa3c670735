package cups

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var requestID atomic.Uint32

var ippStatusNames = map[uint16]string{
	0x0400: "client-error-bad-request",
	0x0401: "client-error-forbidden",
	0x0402: "client-error-not-authenticated",
	0x0403: "client-error-not-authorized",
	0x0404: "client-error-not-possible",
	0x0405: "client-error-timeout",
	0x0406: "client-error-not-found",
	0x0407: "client-error-gone",
	0x040A: "client-error-document-format-not-supported",
	0x0500: "server-error-internal-error",
	0x0501: "server-error-operation-not-supported",
	0x0503: "server-error-service-unavailable",
}

type ippError struct {
	Status  uint16
	Message string
}

func (e *ippError) Error() string {
	name, ok := ippStatusNames[e.Status]
	if !ok {
		name = fmt.Sprintf("IPP error 0x%04x", e.Status)
	}
	if e.Message != "" && e.Message != name {
		return name + ": " + e.Message
	}
	return name
}

func isIPPStatus(err error, status uint16) bool {
	var ie *ippError
	return errors.As(err, &ie) && ie.Status == status
}

func stringAttr(tag byte, name string, values ...string) ippAttribute {
	a := ippAttribute{Tag: tag, Name: name}
	for _, v := range values {
		a.Values = append(a.Values, v)
	}
	return a
}

func intAttr(tag byte, name string, values ...int) ippAttribute {
	a := ippAttribute{Tag: tag, Name: name}
	for _, v := range values {
		a.Values = append(a.Values, v)
	}
	return a
}

func boolAttr(name string, value bool) ippAttribute {
	return ippAttribute{Tag: IPP_TAG_BOOLEAN, Name: name, Values: []interface{}{value}}
}

func (b *Backend) buildIPPRequest(req ippRequest) *bytes.Buffer {
	buf := new(bytes.Buffer)

	// IPP Version (2.0)
	buf.WriteByte(2)
	buf.WriteByte(0)

	binary.Write(buf, binary.BigEndian, req.Operation)
	binary.Write(buf, binary.BigEndian, req.RequestID)

	buf.WriteByte(IPP_TAG_OPERATION)
	writeAttribute(buf, IPP_TAG_CHARSET, "attributes-charset", []byte("utf-8"))
	writeAttribute(buf, IPP_TAG_LANGUAGE, "attributes-natural-language", []byte("en"))
	for _, a := range req.OpAttrs {
		writeIPPAttribute(buf, a)
	}

	if len(req.JobAttrs) > 0 {
		buf.WriteByte(IPP_TAG_JOB)
		for _, a := range req.JobAttrs {
			writeIPPAttribute(buf, a)
		}
	}

	buf.WriteByte(IPP_TAG_END)
	return buf
}

// writeIPPAttribute encodes additional values with an empty name.
func writeIPPAttribute(buf *bytes.Buffer, a ippAttribute) {
	for i, value := range a.Values {
		name := a.Name
		if i > 0 {
			name = ""
		}
		switch v := value.(type) {
		case int:
			writeIntegerAttribute(buf, a.Tag, name, int32(v))
		case bool:
			writeBooleanAttribute(buf, name, v)
		case string:
			writeAttribute(buf, a.Tag, name, []byte(v))
		}
	}
}

func writeAttribute(buf *bytes.Buffer, tag byte, name string, value []byte) {
	buf.WriteByte(tag)
	binary.Write(buf, binary.BigEndian, uint16(len(name)))
	buf.WriteString(name)
	binary.Write(buf, binary.BigEndian, uint16(len(value)))
	buf.Write(value)
}

func writeIntegerAttribute(buf *bytes.Buffer, tag byte, name string, value int32) {
	buf.WriteByte(tag)
	binary.Write(buf, binary.BigEndian, uint16(len(name)))
	buf.WriteString(name)
	binary.Write(buf, binary.BigEndian, uint16(4))
	binary.Write(buf, binary.BigEndian, value)
}

func writeBooleanAttribute(buf *bytes.Buffer, name string, value bool) {
	buf.WriteByte(IPP_TAG_BOOLEAN)
	binary.Write(buf, binary.BigEndian, uint16(len(name)))
	buf.WriteString(name)
	binary.Write(buf, binary.BigEndian, uint16(1))
	if value {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

// do posts an IPP request, optionally followed by document data, and turns
// error statuses into *ippError.
func (b *Backend) do(ctx context.Context, resource string, req ippRequest, doc io.Reader) (*ippResponse, error) {
	req.RequestID = requestID.Add(1)
	resp, err := b.sendIPPRequest(ctx, resource, req, doc)
	if err != nil {
		return nil, err
	}
	if resp.Status >= IPP_STATUS_CLIENT_ERROR {
		return resp, &ippError{Status: resp.Status, Message: resp.statusMessage()}
	}
	return resp, nil
}

func (b *Backend) sendIPPRequest(ctx context.Context, resource string, req ippRequest, doc io.Reader) (*ippResponse, error) {
	var body io.Reader = b.buildIPPRequest(req)
	if doc != nil {
		body = io.MultiReader(body, doc)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+resource, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/ipp")

	resp, err := b.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseIPPResponse(data)
}

func parseIPPResponse(data []byte) (*ippResponse, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("IPP response too short: %d bytes", len(data))
	}

	resp := &ippResponse{
		Status:    binary.BigEndian.Uint16(data[2:4]),
		RequestID: binary.BigEndian.Uint32(data[4:8]),
	}

	pos := 8
	current := -1
	depth := 0

	for pos < len(data) {
		tag := data[pos]
		pos++

		if tag == IPP_TAG_END {
			break
		}

		if tag < 0x10 {
			resp.Groups = append(resp.Groups, ippGroup{Tag: tag})
			current = len(resp.Groups) - 1
			continue
		}

		if pos+2 > len(data) {
			return nil, fmt.Errorf("truncated IPP attribute at offset %d", pos)
		}
		nameLen := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+nameLen > len(data) {
			return nil, fmt.Errorf("truncated IPP attribute name at offset %d", pos)
		}
		name := string(data[pos : pos+nameLen])
		pos += nameLen

		if pos+2 > len(data) {
			return nil, fmt.Errorf("truncated IPP attribute at offset %d", pos)
		}
		valueLen := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+valueLen > len(data) {
			return nil, fmt.Errorf("truncated IPP value for %q", name)
		}
		value := data[pos : pos+valueLen]
		pos += valueLen

		// collection members are skipped
		switch {
		case tag == IPP_TAG_BEGIN_COLLECTION:
			depth++
			continue
		case tag == IPP_TAG_END_COLLECTION:
			if depth > 0 {
				depth--
			}
			continue
		case depth > 0:
			continue
		}

		if current < 0 {
			return nil, fmt.Errorf("IPP attribute %q outside of a group", name)
		}

		group := &resp.Groups[current]
		parsed := parseIPPValue(tag, value)
		if name == "" {
			if n := len(group.Attrs); n > 0 {
				group.Attrs[n-1].Values = append(group.Attrs[n-1].Values, parsed)
			}
			continue
		}
		group.Attrs = append(group.Attrs, ippAttribute{Tag: tag, Name: name, Values: []interface{}{parsed}})
	}

	return resp, nil
}

func parseIPPValue(tag byte, value []byte) interface{} {
	switch tag {
	case IPP_TAG_INTEGER, IPP_TAG_ENUM:
		if len(value) == 4 {
			return int(int32(binary.BigEndian.Uint32(value)))
		}
	case IPP_TAG_BOOLEAN:
		if len(value) == 1 {
			return value[0] != 0
		}
	case IPP_TAG_DATE:
		if len(value) == 11 {
			return parseIPPDate(value)
		}
	case IPP_TAG_RESOLUTION:
		if len(value) == 9 {
			units := "dpi"
			if value[8] == 4 {
				units = "dpcm"
			}
			return fmt.Sprintf("%dx%d%s",
				int32(binary.BigEndian.Uint32(value[0:4])),
				int32(binary.BigEndian.Uint32(value[4:8])),
				units)
		}
	case IPP_TAG_RANGE:
		if len(value) == 8 {
			return fmt.Sprintf("%d-%d",
				int32(binary.BigEndian.Uint32(value[0:4])),
				int32(binary.BigEndian.Uint32(value[4:8])))
		}
	case IPP_TAG_TEXT_LANG, IPP_TAG_NAME_LANG:
		if len(value) >= 4 {
			langLen := int(binary.BigEndian.Uint16(value[0:2]))
			if 2+langLen+2 <= len(value) {
				textLen := int(binary.BigEndian.Uint16(value[2+langLen : 4+langLen]))
				if 4+langLen+textLen <= len(value) {
					return string(value[4+langLen : 4+langLen+textLen])
				}
			}
		}
	case IPP_TAG_NOVALUE:
		return ""
	}
	return string(value)
}

func parseIPPDate(v []byte) time.Time {
	offset := (int(v[9])*60 + int(v[10])) * 60
	if v[8] == '-' {
		offset = -offset
	}
	zone := time.FixedZone("", offset)
	return time.Date(
		int(binary.BigEndian.Uint16(v[0:2])),
		time.Month(v[2]),
		int(v[3]),
		int(v[4]),
		int(v[5]),
		int(v[6]),
		int(v[7])*100*int(time.Millisecond),
		zone,
	)
}

func formatIPPValue(v interface{}) string {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return strconv.FormatInt(val.Unix(), 10)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (a ippAttribute) String() string {
	parts := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		parts = append(parts, formatIPPValue(v))
	}
	return strings.Join(parts, ",")
}

func (a ippAttribute) Int() (int, bool) {
	if len(a.Values) == 0 {
		return 0, false
	}
	switch v := a.Values[0].(type) {
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}
