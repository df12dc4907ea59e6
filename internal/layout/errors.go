package layout

import "errors"

var errOffsetTooWide = errors.New("layout: hole offset exceeds tracked width")
