// SPDX-License-Identifier: MPL-2.0

package report

import "github.com/PhilLello/doxyreport/internal/i18n"

// OutputName is the report entry point relative to the report output directory.
const OutputName = "doxygen/html/index"

// Descriptor exposes the report to a site renderer.
type Descriptor struct {
	aggregate bool
}

// NewDescriptor returns the descriptor of the single or aggregate report.
func NewDescriptor(aggregate bool) Descriptor {
	return Descriptor{aggregate: aggregate}
}

// Name returns the localized report name.
func (d Descriptor) Name(locale string) string {
	return lookup(locale, i18n.KeyReportName)
}

// Description returns the localized report description.
func (d Descriptor) Description(locale string) string {
	return lookup(locale, i18n.KeyReportDescription)
}

// OutputName returns the report entry point, without extension.
func (d Descriptor) OutputName() string { return OutputName }

// IsExternalReport is always true: doxygen renders the pages itself.
func (d Descriptor) IsExternalReport() bool { return true }

// IsAggregate reports whether this is the aggregate report.
func (d Descriptor) IsAggregate() bool { return d.aggregate }

func lookup(locale, key string) string {
	b, err := i18n.Lookup(locale)
	if err != nil {
		b, err = i18n.Lookup("")
		if err != nil {
			return key
		}
	}
	return b.Get(key)
}
