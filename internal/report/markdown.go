package report

import (
	"fmt"
	"strings"
)

// Markdown renders a tab view as markdown for terminal display
func Markdown(v View) string {
	var b strings.Builder
	switch view := v.(type) {
	case OverviewView:
		writeOverview(&b, view)
	case WorkoutView:
		writeWorkout(&b, view)
	case DietView:
		writeDiet(&b, view)
	case SleepView:
		writeSleep(&b, view)
	case EquipmentView:
		writeEquipment(&b, view)
	case WeeklyView:
		writeWeekly(&b, view)
	}
	return b.String()
}

func writeOverview(b *strings.Builder, v OverviewView) {
	fmt.Fprintf(b, "%s\n\n", v.Summary)
	writeStats(b, v.Stats)
	section(b, "Daily Water Intake")
	fmt.Fprintf(b, "**%s**\n\n", v.WaterIntake)
	section(b, "Key Focus Areas")
	for i, f := range v.KeyFocus {
		fmt.Fprintf(b, "%d. %s\n", i+1, f)
	}
	b.WriteString("\n")
}

func writeWorkout(b *strings.Builder, v WorkoutView) {
	section(b, "Warm-up Routine")
	fmt.Fprintf(b, "%s\n\n", v.Warmup)
	for _, d := range v.Days {
		fmt.Fprintf(b, "### %s · %s\n\n", d.Day, d.Headline)
		if d.RestDay {
			fmt.Fprintf(b, "_%s_\n\n", d.Note)
			continue
		}
		for _, ex := range d.Exercises {
			fmt.Fprintf(b, "- **%s** %s\n", ex.Name, ex.Detail)
		}
		b.WriteString("\n")
	}
	section(b, "Cool-down Routine")
	fmt.Fprintf(b, "%s\n\n", v.Cooldown)
	section(b, "Progression Tips")
	bullets(b, v.ProgressionTips)
}

func writeDiet(b *strings.Builder, v DietView) {
	section(b, "Dietary Guidelines")
	bullets(b, v.Guidelines)
	section(b, "Daily Meal Plan")
	for _, s := range v.Sections {
		fmt.Fprintf(b, "### %s\n\n", s.Title)
		for _, m := range s.Meals {
			fmt.Fprintf(b, "- **%s** (%s)  \n  %s\n", m.Name, m.Detail, m.Description)
		}
		b.WriteString("\n")
	}
	section(b, "Hydration")
	fmt.Fprintf(b, "%s\n\n", v.Hydration)
	if len(v.Supplements) > 0 {
		section(b, "Recommended Supplements")
		bullets(b, v.Supplements)
	}
}

func writeSleep(b *strings.Builder, v SleepView) {
	writeStats(b, v.Stats)
	section(b, "Evening Routine")
	bullets(b, v.EveningRoutine)
	section(b, "Morning Routine")
	bullets(b, v.MorningRoutine)
	section(b, "Sleep Improvement Tips")
	bullets(b, v.Tips)
	section(b, "Avoid Before Bed")
	bullets(b, v.AvoidBefore)
}

func writeEquipment(b *strings.Builder, v EquipmentView) {
	fmt.Fprintf(b, "%s\n\n", v.Intro)
	for _, item := range v.Items {
		fmt.Fprintf(b, "### %s `%s`\n\n%s  \n**%s**\n\n", item.Name, item.Badge, item.Reason, item.PriceRange)
	}
	section(b, "Shopping Tips")
	bullets(b, v.ShoppingTips)
}

func writeWeekly(b *strings.Builder, v WeeklyView) {
	for _, d := range v.Days {
		fmt.Fprintf(b, "### %s\n\n", d.Day)
		for _, e := range d.Entries {
			fmt.Fprintf(b, "- `%s` %s\n", e.Time, e.Activity)
		}
		b.WriteString("\n")
	}
}

func writeStats(b *strings.Builder, stats []Stat) {
	b.WriteString("| | |\n|---|---|\n")
	for _, s := range stats {
		fmt.Fprintf(b, "| %s | **%s** |\n", s.Label, s.Value)
	}
	b.WriteString("\n")
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "## %s\n\n", title)
}

func bullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
