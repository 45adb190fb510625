// SPDX-License-Identifier: MIT

// Package blackbox - serialized form.
//
// Every node starts with a header line, leaves follow with a dimension line and
// their entries:
//
//	%%MatrixMarket blackbox <kind> GF(p)
//	<rows> <cols> [flags...]
//	<entries, one line per row or one line for vectors>
//
// A product header is followed by a "% ..." comment line and the serialized
// left and right children, in that order. Parse reads the same grammar back.

package blackbox

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/fibb/field"
	"github.com/katalvlaran/fibb/matrix"
)

const headerPrefix = "%%MatrixMarket blackbox"

// lineWriter accumulates the first write error so callers check once at the end.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\n")
}

func (lw *lineWriter) header(k Kind, f field.Field) {
	lw.line(fmt.Sprintf("%s %s %s", headerPrefix, k, f.Name()))
}

func (lw *lineWriter) comment(s string) {
	lw.line("% " + s)
}

func (lw *lineWriter) dims(rows, cols int, flags ...string) {
	parts := append([]string{strconv.Itoa(rows), strconv.Itoa(cols)}, flags...)
	lw.line(strings.Join(parts, " "))
}

func (lw *lineWriter) elements(vs []field.Element) {
	if len(vs) == 0 {
		return
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatUint(v, 10)
	}
	lw.line(strings.Join(parts, " "))
}

func (lw *lineWriter) ints(vs []int) {
	if len(vs) == 0 {
		return
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	lw.line(strings.Join(parts, " "))
}

// dense writes one line per row.
func (lw *lineWriter) dense(m *matrix.Dense) {
	for i := 0; i < m.Rows(); i++ {
		lw.elements(m.RowView(i))
	}
}
