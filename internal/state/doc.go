// Package state persists undo journals.
//
// Every applied batch leaves a journal describing how to put the files back:
// each move's final and original path, a checksum of the file as it was
// left, and the directories the batch created. Journals are stored as JSON
// files in ~/.goblin/journals, one per reorganized root directory, so only the
// most recent batch for a directory can be undone.
//
// Key concepts:
//   - Journal: The undo record of one applied batch
//   - JournalID: Stable identifier derived from the root directory
//   - JournalStore: Interface for persisting and loading journals
package state
