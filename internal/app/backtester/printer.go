package backtester

import (
	"fmt"
	"sort"
	"strings"
)

// ConsolePrinter — вывод сводной таблицы в консоль.
type ConsolePrinter struct{}

// NewConsolePrinter — конструктор для ConsolePrinter.
func NewConsolePrinter() *ConsolePrinter {
	return &ConsolePrinter{}
}

// PrintSummary — сравнительная таблица стратегий по тикерам, лучшие по
// доходности усиленной стратегии сверху.
func (p *ConsolePrinter) PrintSummary(results []TickerResult) {
	if len(results) == 0 {
		fmt.Println("\n⚠️ Ни один тикер не обработан — сводки нет")
		return
	}

	sorted := make([]TickerResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Enhanced.Return > sorted[j].Enhanced.Return
	})

	fmt.Println("\n" + strings.Repeat("=", 100))
	fmt.Println("📊 ИТОГОВОЕ СРАВНЕНИЕ СТРАТЕГИЙ")
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-10s │ %-28s │ %-28s │ %-14s\n",
		"Тикер", "Усиленная (дох/DD/Шарп)", "Классическая (дох/DD/Шарп)", "Buy&Hold")
	fmt.Println(strings.Repeat("-", 100))

	for i, r := range sorted {
		marker := "  "
		if i == 0 && len(sorted) > 1 {
			marker = "🥇"
		}
		fmt.Printf("%s %-8s │ %+8.2f%% %7.2f%% %6.2f │ %+8.2f%% %7.2f%% %6.2f │ %+8.2f%%\n",
			marker, r.Ticker,
			r.Enhanced.Return, r.Enhanced.Drawdown, r.Enhanced.Sharpe,
			r.Classical.Return, r.Classical.Drawdown, r.Classical.Sharpe,
			r.BuyHold.Return)
	}
	fmt.Println(strings.Repeat("=", 100))
}
