package models

import "fmt"

// FormatConfidence переводит вероятность [0,1] в проценты
// с одним знаком после запятой: 0.823 -> "82.3%"
func FormatConfidence(probability float64) string {
	return fmt.Sprintf("%.1f%%", probability*100)
}
