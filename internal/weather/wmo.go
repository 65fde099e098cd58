package weather

// wmoDescriptions maps WMO weather interpretation codes (WW) to the
// Korean labels the dashboard displays.
var wmoDescriptions = map[int]string{
	0:  "맑음",
	1:  "대체로 맑음",
	2:  "구름 조금",
	3:  "흐림",
	45: "안개",
	48: "침착 안개",
	51: "가벼운 이슬비",
	53: "이슬비",
	55: "강한 이슬비",
	61: "약한 비",
	63: "비",
	65: "강한 비",
	71: "약한 눈",
	73: "눈",
	75: "강한 눈",
	77: "눈알갱이",
	80: "약한 소나기",
	81: "소나기",
	82: "강한 소나기",
	85: "약한 눈 소나기",
	86: "강한 눈 소나기",
	95: "뇌우",
	96: "뇌우와 우박",
	99: "심한 뇌우와 우박",
}

// DescriptionUnknown is returned for codes outside the known ranges.
const DescriptionUnknown = "알 수 없음"

// Describe maps a WMO code to its display label. Total over all ints:
// unmapped codes yield DescriptionUnknown, never an error.
func Describe(code int) string {
	if d, ok := wmoDescriptions[code]; ok {
		return d
	}
	return DescriptionUnknown
}
