package study

import (
	"github.com/at-ishikawa/vocadays/internal/mirror"
	"github.com/at-ishikawa/vocadays/internal/plan"
	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/wrongnote"
)

// mirrorObserver forwards every locally stored change to the remote mirror.
type mirrorObserver struct {
	writer *mirror.AsyncWriter
}

var (
	_ progress.Observer  = mirrorObserver{}
	_ plan.GoalObserver  = mirrorObserver{}
	_ wrongnote.Observer = mirrorObserver{}
)

func (o mirrorObserver) RecordChanged(record progress.Record) {
	o.writer.UpsertProgress(ProgressRow(record))
}

func (o mirrorObserver) LevelReset(level string) {
	o.writer.DeleteLevelProgress(level)
}

func (o mirrorObserver) GoalSet(goal plan.Goal, p plan.Plan) {
	o.writer.UpsertGoal(GoalRow(goal, p))
}

func (o mirrorObserver) GoalCleared(level string) {
	o.writer.DeleteGoal(level)
}

func (o mirrorObserver) EntryChanged(entry wrongnote.Entry) {
	o.writer.UpsertWrongAnswers(WrongAnswerRow(entry))
}

func (o mirrorObserver) EntryRemoved(itemID string) {
	o.writer.DeleteWrongAnswer(itemID)
}

func (o mirrorObserver) Cleared() {
	o.writer.ClearWrongAnswers()
}
