package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// envelope is the top-level body of every response.
type envelope map[string]any

// Envelope status values.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Content types written by the formatter.
const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml"
)

// xmlRoot is the document element of XML responses.
const xmlRoot = "response"

// success builds a success envelope.
func success(message string) envelope {
	return envelope{"status": statusSuccess, "message": message}
}

// with sets a payload key and returns the envelope.
func (e envelope) with(key string, v any) envelope {
	e[key] = v
	return e
}

// wantsXML reports whether the request asked for XML output.
func wantsXML(r *http.Request) bool {
	return r != nil && strings.EqualFold(r.URL.Query().Get("format"), "xml")
}

// writeResponse renders body as XML when the request carries format=xml,
// and as JSON otherwise.
func writeResponse(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	if wantsXML(r) {
		if out, err := renderXML(body); err == nil {
			w.Header().Set("Content-Type", contentTypeXML)
			w.WriteHeader(status)
			//nolint:errcheck // Best-effort write to response; connection may be closed
			w.Write(out)
			return
		}
	}
	writeJSON(w, status, body)
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// renderXML converts v to an XML document under a <response> root.
//
// v is first passed through encoding/json so struct tags decide element
// names. Object keys are emitted in sorted order, arrays as repeated
// <item> children and null as an empty element.
func renderXML(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	appendXML(doc.CreateElement(xmlRoot), tree)
	return doc.WriteToBytes()
}

func appendXML(el *etree.Element, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendXML(el.CreateElement(k), t[k])
		}
	case []any:
		for _, item := range t {
			appendXML(el.CreateElement("item"), item)
		}
	case string:
		el.SetText(t)
	case json.Number:
		el.SetText(t.String())
	case bool:
		el.SetText(strconv.FormatBool(t))
	case nil:
		// empty element
	}
}
