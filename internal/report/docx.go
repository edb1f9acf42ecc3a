package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 13
	titleSize   = 16
	sectionSize = 15
)

// Write saves the minutes for s at outputPath. Empty sections are omitted.
func (w *implWriter) Write(ctx context.Context, outputPath string, s *summary.Summary) error {
	if s == nil {
		s = &summary.Summary{}
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), w.title, true, titleSize)
	doc.AddParagraph("")

	details := s.MeetingDetails
	if details.DateTime != "" || details.Location != "" || len(details.Participants) > 0 {
		addSection(doc, "Meeting Details")
		addField(doc, "Date & Time", details.DateTime)
		addField(doc, "Location", details.Location)
		addField(doc, "Participants", strings.Join(details.Participants, ", "))
	}

	addText(doc, "Objective", s.Objective)
	addBullets(doc, "Agenda", s.AgendaItems)
	addText(doc, "Key Discussions", s.KeyDiscussions)
	addText(doc, "Decisions Made", s.DecisionsMade)

	if len(s.ActionItems) > 0 {
		addSection(doc, "Action Items")
		for i, item := range s.ActionItems {
			addBody(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, actionLine(item)))
		}
	}

	addText(doc, "Next Steps", s.NextSteps)
	addText(doc, "Additional Notes", s.AdditionalNotes)

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	w.logger.Info(ctx, "Minutes written to %s", outputPath)
	return nil
}

// PathFor returns the minutes path for a transcript inside dir.
func PathFor(dir, transcriptPath string) string {
	base := filepath.Base(transcriptPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+".docx")
}

func actionLine(item summary.ActionItem) string {
	task := item.Task
	if task == "" {
		task = "(no task)"
	}

	var extra []string
	if item.Owner != "" {
		extra = append(extra, "owner: "+item.Owner)
	}
	if item.DueDate != "" {
		extra = append(extra, "due: "+item.DueDate)
	}
	if len(extra) == 0 {
		return task
	}
	return fmt.Sprintf("%s (%s)", task, strings.Join(extra, ", "))
}

func addSection(doc *docx.RootDoc, heading string) {
	doc.AddParagraph("")
	addStyledRun(doc.AddParagraph(""), heading, true, sectionSize)
}

func addText(doc *docx.RootDoc, heading, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	addSection(doc, heading)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			addBody(doc.AddParagraph(""), line)
		}
	}
}

func addBullets(doc *docx.RootDoc, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	addSection(doc, heading)
	for _, item := range items {
		addBody(doc.AddParagraph(""), "• "+item)
	}
}

func addField(doc *docx.RootDoc, label, value string) {
	if value == "" {
		return
	}
	p := doc.AddParagraph("")
	p.AddText(label+": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
	p.AddText(value).Font(fontName).Size(fontSize).Color("000000")
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addBody(p *docx.Paragraph, text string) {
	addStyledRun(p, text, false, fontSize)
}
