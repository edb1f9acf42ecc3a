package summary

import (
	"fmt"
	"strings"
)

const (
	participantSep = ", "
	agendaSep      = "; "
)

// Fixed columns, in the order they appear in every row.
const (
	ColumnDateTime        = "Meeting_DateTime"
	ColumnLocation        = "Meeting_Location"
	ColumnParticipants    = "Meeting_Participants"
	ColumnObjective       = "Objective"
	ColumnAgendaItems     = "AgendaItems"
	ColumnKeyDiscussions  = "KeyDiscussions"
	ColumnDecisionsMade   = "DecisionsMade"
	ColumnNextSteps       = "NextSteps"
	ColumnAdditionalNotes = "AdditionalNotes"
)

// ActionItemColumn names the column for one sub-field of the n-th action item (1-based).
func ActionItemColumn(n int, field string) string {
	return fmt.Sprintf("ActionItem_%d_%s", n, field)
}

// Flatten maps s onto a single row. Lists are joined, action items are
// expanded into three numbered columns each. A nil summary yields the
// fixed columns with empty values.
func Flatten(s *Summary) *Row {
	if s == nil {
		s = &Summary{}
	}

	row := NewRow()
	row.Set(ColumnDateTime, s.MeetingDetails.DateTime)
	row.Set(ColumnLocation, s.MeetingDetails.Location)
	row.Set(ColumnParticipants, strings.Join(s.MeetingDetails.Participants, participantSep))
	row.Set(ColumnObjective, s.Objective)
	row.Set(ColumnAgendaItems, strings.Join(s.AgendaItems, agendaSep))
	row.Set(ColumnKeyDiscussions, s.KeyDiscussions)
	row.Set(ColumnDecisionsMade, s.DecisionsMade)
	row.Set(ColumnNextSteps, s.NextSteps)
	row.Set(ColumnAdditionalNotes, s.AdditionalNotes)

	for i, item := range s.ActionItems {
		n := i + 1
		row.Set(ActionItemColumn(n, "Task"), item.Task)
		row.Set(ActionItemColumn(n, "Owner"), item.Owner)
		row.Set(ActionItemColumn(n, "DueDate"), item.DueDate)
	}

	return row
}
