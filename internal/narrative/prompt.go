package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/voltscope/internal/energy"
)

const journalistSystemPrompt = `You are a senior data journalist for the Financial Times.`

const storySystemPrompt = `You are a data storyteller.`

// Chart subjects passed as the title of series and insight requests.
const (
	TransitionSubject = "Transition Progress: Fossil Fuels vs Clean Energy share over time"
	TechnologySubject = "Energy Mix Evolution (Solar/Wind vs Coal/Gas)"
)

// buildSeriesPrompt embeds the sampled series, chart title and region in
// the insight instructions.
func buildSeriesPrompt(title string, region energy.Region, samples any) (string, error) {
	data, err := json.Marshal(samples)
	if err != nil {
		return "", fmt.Errorf("encode samples: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following dataset for region: %s.\n", region)
	fmt.Fprintf(&b, "Chart Subject: %s\n", title)
	fmt.Fprintf(&b, "Data (Sampled): %s\n\n", data)
	b.WriteString("Task: Write a single, punchy, insight (max 2 sentences) that captures the most interesting trend, inflection point, or anomaly.\n")
	b.WriteString(`Do not describe the chart literally (e.g., "the line goes up"). Instead, explain *why* or the *impact*.` + "\n")
	b.WriteString("Use active voice.")
	return b.String(), nil
}

// buildInsightPrompt extends the series prompt with the trend label the
// structured reply must carry.
func buildInsightPrompt(title string, region energy.Region, samples any) (string, error) {
	prompt, err := buildSeriesPrompt(title, region, samples)
	if err != nil {
		return "", err
	}
	return prompt + "\n\nAlso classify the trend for the energy transition as positive, negative, or neutral.", nil
}

// buildStoryPrompt embeds the four headline numbers in the three-part
// story instructions.
func buildStoryPrompt(region energy.Region, stats energy.DerivedStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short narrative (3 paragraphs) about the energy transition in %s.\n\n", region)
	fmt.Fprintf(&b, "Key Stats for %d:\n", stats.Year)
	fmt.Fprintf(&b, "- Renewable Share: %.1f%%\n", stats.RenewablesShare)
	fmt.Fprintf(&b, "- CO2 Emissions: %d Million Tonnes\n", stats.CO2)
	fmt.Fprintf(&b, "- Fossil Fuel Total: %d TWh\n", stats.TotalFossil)
	fmt.Fprintf(&b, "- Renewable Total: %d TWh\n\n", stats.TotalRenewables)
	b.WriteString("Structure:\n")
	b.WriteString("1. The headline (Bold, catchy).\n")
	b.WriteString("2. The Challenge (Reliance on fossils).\n")
	b.WriteString("3. The Hope (Growth of renewables).\n\n")
	b.WriteString("Format the output with Markdown. Make it sound professional yet engaging.")
	return b.String()
}

// Downsample keeps every fifth element plus the last one. The result is
// a new slice; an empty input yields an empty slice.
func Downsample[T any](series []T) []T {
	out := make([]T, 0, len(series)/5+2)
	for i, v := range series {
		if i%5 == 0 || i == len(series)-1 {
			out = append(out, v)
		}
	}
	return out
}
