package search

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/content"
)

// SyncTree brings the search tables in line with the assembled site tree:
//   - new/changed pages are upserted
//   - locations no longer present in the tree are deleted
//
// Unchanged pages (same checksum) are skipped.
func SyncTree(db *DB, tree *content.Tree, logger *slog.Logger) error {
	stored, err := db.AllChecksums()
	if err != nil {
		return err
	}

	live := make(map[string]struct{})
	tree.Walk(func(n *content.Node) {
		loc := n.Location().String()
		live[loc] = struct{}{}

		doc := n.Document()
		cs := checksum.Sum([]byte(doc.Title + "\x00" + doc.Body + "\x00" + strings.Join(doc.Tags, ",")))
		if stored[loc] == cs {
			return
		}

		row := PageRow{
			Location:  loc,
			Title:     doc.Title,
			Checksum:  cs,
			Tags:      doc.Tags,
			UpdatedAt: time.Now(),
		}
		if err := db.UpsertPage(row, doc.Body); err != nil {
			logger.Warn("search: upsert failed", slog.String("location", loc), slog.String("error", err.Error()))
		} else {
			logger.Debug("search: indexed", slog.String("location", loc))
		}
	})

	// Remove stale entries.
	for loc := range stored {
		if _, ok := live[loc]; !ok {
			if err := db.DeletePage(loc); err != nil {
				logger.Warn("search: delete failed", slog.String("location", loc), slog.String("error", err.Error()))
			} else {
				logger.Debug("search: removed stale", slog.String("location", loc))
			}
		}
	}

	return nil
}
