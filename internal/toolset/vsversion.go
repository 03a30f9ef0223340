package toolset

import (
	"strconv"
	"strings"
)

// vsVersionLess orders dotted installation versions ("17.9.34622.214")
// numerically per component. String comparison would put "9" after "17";
// non-numeric components count as 0.
func vsVersionLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < max(len(as), len(bs)); i++ {
		var an, bn int
		if i < len(as) {
			an, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bn, _ = strconv.Atoi(bs[i])
		}
		if an != bn {
			return an < bn
		}
	}
	return false
}
