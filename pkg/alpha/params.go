package alpha

import "net/url"

// ParamName is the request parameter carrying the alphabetic selection.
const ParamName = "alpha_filter"

// LegacyParamName is accepted when ParamName is absent.
const LegacyParamName = "alpha"

// DefaultParamNames lists the parameter names read by ReadParam, in
// priority order.
var DefaultParamNames = []string{ParamName, LegacyParamName}

// ReadParam returns the first present parameter among names and whether it
// was present at all. An empty value that was supplied still counts as
// present. With no names, DefaultParamNames are used.
func ReadParam(values url.Values, names ...string) (string, bool) {
	if len(names) == 0 {
		names = DefaultParamNames
	}
	for _, name := range names {
		if vs, ok := values[name]; ok {
			if len(vs) == 0 {
				return "", true
			}
			return vs[0], true
		}
	}
	return "", false
}

// ParamsFromValues reads the augmenter inputs from request parameters.
func ParamsFromValues(values url.Values, admin bool, names ...string) Params {
	raw, ok := ReadParam(values, names...)
	return Params{
		Filter:    raw,
		HasFilter: ok,
		Admin:     admin,
	}
}
