// Package blame annotates the lines of a file with the revision that last
// changed them, for highlighting recent changes in an editor.
//
// # Overview
//
// An Annotator reads `git blame -t` style output from a LineHistorySource in
// a single pass. The first line of every revision younger than the recency
// window gets a full record: the revision's log text (fetched once from a
// RevisionLogSource), the first line of its block, and a colour whose alpha
// decays as exp(-age/window). Every later line of an already seen revision is
// an alias pointing at an earlier line, so the log text is stored only once.
//
// # Blocks and owners
//
// A block is a run of consecutive lines from the same revision. Aliases point
// at the revision's owner line. When a revision reappears after another
// revision's lines, the first line of the new block becomes the owner, so
// aliases always refer to the nearest preceding block.
//
// # Usage Example
//
//	annotator := blame.NewAnnotator(git.BlameSource{Dir: dir}, git.LogSource{Dir: dir}, blame.Options{
//		Window: cfg.Window(),
//		Color:  tmpl,
//	})
//	annotations, err := annotator.Annotate(ctx, "main.go")
//	if err != nil {
//		return err
//	}
//	return json.NewEncoder(os.Stdout).Encode(annotations)
package blame
