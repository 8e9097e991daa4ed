package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gdocmark/internal/ui/pretty"
	"github.com/yaklabco/gdocmark/pkg/convert"
	"github.com/yaklabco/gdocmark/pkg/docops"
	"github.com/yaklabco/gdocmark/pkg/runner"
)

func sampleStats() runner.Stats {
	return runner.Stats{
		FilesDiscovered: 3,
		FilesConverted:  3,
		OperationsTotal: 14,
		OperationsByKind: map[docops.Kind]int{
			docops.KindInsertText:        3,
			docops.KindSetCharacterStyle: 11,
		},
		InsertedLength: 120,
		ByFormat:       map[convert.Format]int{convert.FormatMarkdown: 2, convert.FormatHTML: 1},
	}
}

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(sampleStats())

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files converted:   3")
	assert.Contains(t, result, "Operations:        14")
	assert.Contains(t, result, "insertText:")
	assert.Contains(t, result, "updateTextStyle:")
	assert.NotContains(t, result, "createParagraphBullets")
	assert.Contains(t, result, "Inserted length:   120")
	assert.Contains(t, result, "Converted")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := sampleStats()
	stats.FilesFailed = 1

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Conversion failed for some inputs")
}

func TestFormatSummary_WarningsOnly(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := sampleStats()
	stats.FindingsTotal = 2
	stats.FilesWithFindings = 1

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Warnings:          2")
	assert.Contains(t, result, "Converted with warnings")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats func() runner.Stats
		want  string
	}{
		{
			name:  "no files",
			stats: func() runner.Stats { return runner.Stats{} },
			want:  "No files to convert.\n",
		},
		{
			name:  "clean run",
			stats: sampleStats,
			want:  "3 files converted (1 html, 2 markdown), 14 operations\n",
		},
		{
			name: "single file with findings",
			stats: func() runner.Stats {
				return runner.Stats{
					FilesDiscovered:   1,
					FilesConverted:    1,
					OperationsTotal:   1,
					FindingsTotal:     1,
					FilesWithFindings: 1,
					ByFormat:          map[convert.Format]int{convert.FormatPlain: 1},
				}
			},
			want: "1 file converted (1 plain), 1 operation, 1 warning in 1 file\n",
		},
		{
			name: "failures and writes",
			stats: func() runner.Stats {
				stats := sampleStats()
				stats.FilesDiscovered = 4
				stats.FilesFailed = 1
				stats.FilesWritten = 3
				return stats
			},
			want: "3 files converted (1 html, 2 markdown), 14 operations, 1 failed, 3 written\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats()))
		})
	}
}
