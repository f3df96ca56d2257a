package parser

import (
	"strconv"
	"strings"
)

// ============================================================
// Coordinate list parser
// ============================================================

// ParseCoords разбирает список координат через запятую.
// Каждый токен читается как целое по ведущему префиксу ("12px" -> 12, "3.9" -> 3),
// токен без цифр превращается в 0. Количество токенов сохраняется.
func ParseCoords(s string) []int {
	parts := strings.Split(s, ",")

	coords := make([]int, 0, len(parts))
	for _, part := range parts {
		coords = append(coords, parseIntPrefix(strings.TrimSpace(part)))
	}

	return coords
}

// FormatCoords: обратная операция для отображения в поле ввода.
func FormatCoords(coords []int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func parseIntPrefix(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	val, err := strconv.Atoi(s[:end])
	if err != nil {
		// overflow
		return 0
	}
	return val
}
