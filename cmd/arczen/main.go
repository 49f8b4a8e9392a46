package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"arczen/internal/arc"
	"arczen/internal/backup"
	"arczen/internal/config"
	"arczen/internal/exporter"
	"arczen/internal/importer"
	"arczen/internal/logger"
	"arczen/internal/model"
	"arczen/internal/picker"
	"arczen/internal/tui"
	"arczen/internal/zen"
)

func main() {
	args, verbose := splitVerbose(os.Args[1:])
	log := logger.New(verbose)
	defer func() { _ = log.Sync() }()

	app := &app{log: log, stdin: bufio.NewReader(os.Stdin)}

	if len(args) >= 1 {
		switch args[0] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "export-arc":
			app.runExportArc(optArg(args, 1))
			return
		case "export-zen":
			app.runExportZen(optArg(args, 1))
			return
		case "migrate":
			app.runMigrate()
			return
		case "import-html":
			if len(args) < 2 {
				fmt.Fprintf(os.Stderr, "Usage: arczen import-html <file.html> [workspace]\n")
				os.Exit(1)
			}
			app.runImportHTML(args[1], optArg(args, 2))
			return
		case "backups":
			app.runListBackups()
			return
		case "restore":
			app.runRestore(optArg(args, 1))
			return
		case "delete-backups":
			app.runDeleteBackups()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
			printHelp()
			os.Exit(1)
		}
	}

	// No args - run the interactive menu
	app.runMenu()
}

func printHelp() {
	help := `arczen - move bookmarks between Arc and Zen Browser

Usage:
  arczen                      Open interactive menu
  arczen export-arc [path]    Export Arc pinned tabs to bookmark HTML
  arczen export-zen [path]    Export Zen pinned tabs to bookmark HTML
  arczen migrate              Copy Arc spaces into Zen workspaces
  arczen import-html <file> [workspace]
                              Import a bookmark HTML file into a Zen workspace
  arczen backups              List Zen session snapshots
  arczen restore [stamp]      Restore a snapshot (latest when omitted)
  arczen delete-backups       Delete all session snapshots
  arczen help                 Show this help

Flags:
  -v, --verbose               Debug logging

Config:
  ~/.config/arczen/config.json
`
	fmt.Print(help)
}

type app struct {
	log   logger.Logger
	stdin *bufio.Reader
}

// runMenu loops the action menu until the user quits.
func (a *app) runMenu() {
	for {
		menu := tui.NewMenu()
		finalModel, err := tea.NewProgram(menu).Run()
		if err != nil {
			fail("Error running menu: %v", err)
		}

		switch finalModel.(tui.Menu).Chosen() {
		case tui.ActionExportArc:
			a.runExportArc("")
		case tui.ActionExportZen:
			a.runExportZen("")
		case tui.ActionMigrate:
			a.runMigrate()
		case tui.ActionRestore:
			a.runRestorePicker()
		case tui.ActionDeleteBackups:
			a.runDeleteBackups()
		default:
			return
		}
		fmt.Println()
	}
}

// runExportArc writes the Arc sidebar as bookmark HTML.
func (a *app) runExportArc(outputPath string) {
	cfg := a.loadConfig()

	data, err := arc.ReadSidebar(cfg.ArcSidebarPath)
	if err != nil {
		fail("Error reading Arc sidebar: %v", err)
	}

	profiles, err := arc.NewParser(a.log, cfg.IncludeUnpinned).Parse(data)
	if err != nil {
		fail("Error parsing Arc sidebar: %v", err)
	}

	tree := profileTree(profiles)
	a.writeExport(tree, outputPath, "arc-bookmarks")
}

// runExportZen writes the Zen pinned tabs as bookmark HTML.
func (a *app) runExportZen(outputPath string) {
	profile := a.zenProfile()

	set, err := zen.ReadSessionSet(profile)
	if err != nil {
		fail("Error reading Zen session: %v", err)
	}
	workspaces, err := zen.Workspaces(set.Session)
	if err != nil {
		fail("Error reading Zen workspaces: %v", err)
	}

	tree, err := zen.ExportTrees(set.Session, workspaces)
	if err != nil {
		fail("Error reading Zen session: %v", err)
	}
	a.writeExport(tree, outputPath, "zen-bookmarks")
}

// runMigrate copies Arc spaces into matching Zen workspaces.
func (a *app) runMigrate() {
	cfg := a.loadConfig()
	profile := a.zenProfile()

	a.waitForZenToClose()

	data, err := arc.ReadSidebar(cfg.ArcSidebarPath)
	if err != nil {
		fail("Error reading Arc sidebar: %v", err)
	}
	profiles, err := arc.NewParser(a.log, cfg.IncludeUnpinned).Parse(data)
	if err != nil {
		fail("Error parsing Arc sidebar: %v", err)
	}

	var spaces []model.Space
	for _, p := range profiles {
		spaces = append(spaces, p.Spaces...)
	}
	if len(spaces) == 0 {
		fmt.Println("No Arc spaces found, nothing to migrate.")
		return
	}

	set, err := zen.ReadSessionSet(profile)
	if err != nil {
		fail("Error reading Zen session: %v", err)
	}
	workspaces, err := zen.Workspaces(set.Session)
	if err != nil {
		fail("Error reading Zen workspaces: %v", err)
	}
	if len(workspaces) == 0 {
		fail("No workspaces in the Zen session. Create them in Zen first.")
	}

	titles := make([]string, len(spaces))
	for i, s := range spaces {
		titles[i] = s.Title
	}
	matches := zen.MatchWorkspaces(titles, workspaces)

	plan := a.resolveMatches(spaces, matches)
	if len(plan) == 0 {
		fmt.Println("Nothing selected, aborting.")
		return
	}

	stamp, err := backup.Snapshot(profile)
	if err != nil {
		fail("Error creating backup: %v", err)
	}
	fmt.Printf("Backed up session files (%s)\n", stamp)

	builder := zen.NewBuilder(model.NewIDGenerator())
	migrated := 0
	for _, step := range plan {
		ents := builder.Build(step.space.Pinned, step.workspace.UUID)
		set, err = set.Merge(ents, step.workspace.UUID, time.Now())
		if err != nil {
			fail("Error merging %q: %v", step.space.Title, err)
		}
		migrated++
		fmt.Printf("  %s -> %s (%d bookmarks)\n",
			step.space.Title, step.workspace.Name, model.CountBookmarks(step.space.Pinned))
	}

	if err := set.WriteFiles(profile); err != nil {
		fail("Error writing session files: %v", err)
	}
	fmt.Printf("Migrated %d space(s). Restart Zen Browser to see them.\n", migrated)
}

// runImportHTML merges a bookmark HTML file into one Zen workspace.
func (a *app) runImportHTML(path, workspaceName string) {
	profile := a.zenProfile()
	a.waitForZenToClose()

	file, err := os.Open(path)
	if err != nil {
		fail("Error opening file: %v", err)
	}
	defer file.Close()

	tree, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fail("Error parsing HTML: %v", err)
	}
	if len(tree) == 0 {
		fmt.Println("No bookmarks in file, nothing to import.")
		return
	}

	set, err := zen.ReadSessionSet(profile)
	if err != nil {
		fail("Error reading Zen session: %v", err)
	}
	workspaces, err := zen.Workspaces(set.Session)
	if err != nil {
		fail("Error reading Zen workspaces: %v", err)
	}

	if workspaceName == "" {
		workspaceName = a.prompt("Target workspace name: ")
	}
	matches := zen.MatchWorkspaces([]string{workspaceName}, workspaces)
	target := matches[0].Workspace
	if target == nil && matches[0].Suggestion != nil {
		if a.confirm(fmt.Sprintf("Use workspace %q?", matches[0].Suggestion.Name)) {
			target = matches[0].Suggestion
		}
	}
	if target == nil {
		fail("No workspace named %q", workspaceName)
	}

	stamp, err := backup.Snapshot(profile)
	if err != nil {
		fail("Error creating backup: %v", err)
	}
	fmt.Printf("Backed up session files (%s)\n", stamp)

	ents := zen.NewBuilder(model.NewIDGenerator()).Build(tree, target.UUID)
	set, err = set.Merge(ents, target.UUID, time.Now())
	if err != nil {
		fail("Error merging: %v", err)
	}
	if err := set.WriteFiles(profile); err != nil {
		fail("Error writing session files: %v", err)
	}
	fmt.Printf("Imported %d bookmarks into %s. Restart Zen Browser to see them.\n",
		model.CountBookmarks(tree), target.Name)
}

func (a *app) runListBackups() {
	stamps, err := backup.List(a.zenProfile())
	if err != nil {
		fail("Error listing backups: %v", err)
	}
	if len(stamps) == 0 {
		fmt.Println("No backups.")
		return
	}
	for _, stamp := range stamps {
		fmt.Println(stamp)
	}
}

func (a *app) runRestore(stamp string) {
	profile := a.zenProfile()
	a.waitForZenToClose()

	if err := backup.Restore(profile, stamp); err != nil {
		fail("Error restoring backup: %v", err)
	}
	if stamp == "" {
		stamp = "latest"
	}
	fmt.Printf("Restored %s snapshot.\n", stamp)
}

// runRestorePicker lets the user choose which snapshot to restore.
func (a *app) runRestorePicker() {
	profile := a.zenProfile()

	stamps, err := backup.List(profile)
	if err != nil {
		fail("Error listing backups: %v", err)
	}
	if len(stamps) == 0 {
		fmt.Println("No backups to restore.")
		return
	}

	items := make([]picker.Item, len(stamps))
	for i, stamp := range stamps {
		items[i] = picker.Item{Label: stamp, Detail: prettyStamp(stamp)}
	}

	p := picker.New("Restore which snapshot?", items)
	finalModel, err := tea.NewProgram(p).Run()
	if err != nil {
		fail("Error running picker: %v", err)
	}
	chosen := finalModel.(picker.Picker).Selected()
	if chosen == nil {
		return
	}

	a.runRestore(chosen.Label)
}

func (a *app) runDeleteBackups() {
	profile := a.zenProfile()

	stamps, err := backup.List(profile)
	if err != nil {
		fail("Error listing backups: %v", err)
	}
	if len(stamps) == 0 {
		fmt.Println("No backups to delete.")
		return
	}
	if !a.confirm(fmt.Sprintf("Delete %d snapshot(s)?", len(stamps))) {
		return
	}

	deleted, err := backup.DeleteAll(profile)
	if err != nil {
		fail("Error deleting backups: %v", err)
	}
	fmt.Printf("Deleted %d backup file(s).\n", deleted)
}

type migrationStep struct {
	space     model.Space
	workspace zen.Workspace
}

// resolveMatches turns the match results into a confirmed migration plan,
// prompting for suggestions and skipping spaces with no destination.
func (a *app) resolveMatches(spaces []model.Space, matches []zen.Match) []migrationStep {
	var plan []migrationStep
	for i, m := range matches {
		switch {
		case m.Workspace != nil:
			plan = append(plan, migrationStep{space: spaces[i], workspace: *m.Workspace})
		case m.Suggestion != nil:
			q := fmt.Sprintf("No workspace named %q. Migrate into %q?", m.SpaceTitle, m.Suggestion.Name)
			if a.confirm(q) {
				plan = append(plan, migrationStep{space: spaces[i], workspace: *m.Suggestion})
			} else {
				fmt.Printf("  skipping %q\n", m.SpaceTitle)
			}
		default:
			fmt.Printf("  no workspace for %q, skipping\n", m.SpaceTitle)
		}
	}
	return plan
}

// waitForZenToClose blocks until no Zen process is found or the user aborts.
func (a *app) waitForZenToClose() {
	for zen.IsRunning() {
		answer := a.prompt("Zen Browser is running. Close it and press Enter to retry, or q to abort: ")
		if strings.EqualFold(answer, "q") {
			os.Exit(0)
		}
	}
}

// writeExport renders the tree to HTML, writes it, and copies the path to
// the clipboard.
func (a *app) writeExport(tree []*model.Node, outputPath, prefix string) {
	if len(tree) == 0 {
		fmt.Println("No bookmarks found, nothing to export.")
		return
	}

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath(prefix)
		if err != nil {
			fail("Error getting default export path: %v", err)
		}
	}

	html := exporter.ExportHTML(tree)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fail("Error writing file: %v", err)
	}

	if err := clipboard.WriteAll(outputPath); err == nil {
		fmt.Println("(path copied to clipboard)")
	}
	fmt.Printf("Exported %d bookmarks, %d folders to %s\n",
		model.CountBookmarks(tree), model.CountFolders(tree), outputPath)
}

// profileTree flattens parsed Arc profiles into one exportable tree. A
// single profile exports its spaces directly; multiple profiles get a
// wrapping folder each.
func profileTree(profiles []model.Profile) []*model.Node {
	var spaceNodes = func(p model.Profile) []*model.Node {
		var nodes []*model.Node
		for _, s := range p.Spaces {
			children := s.Pinned
			if len(s.Unpinned) > 0 {
				children = append(children, model.NewFolder(s.ID+"-unpinned", "Unpinned", s.Unpinned...))
			}
			if len(children) == 0 {
				continue
			}
			nodes = append(nodes, model.NewFolder(s.ID, s.Title, children...))
		}
		return nodes
	}

	if len(profiles) == 1 {
		return spaceNodes(profiles[0])
	}
	var tree []*model.Node
	for _, p := range profiles {
		nodes := spaceNodes(p)
		if len(nodes) == 0 {
			continue
		}
		tree = append(tree, model.NewFolder(p.Label, p.Label, nodes...))
	}
	return tree
}

func (a *app) loadConfig() *config.Config {
	path, err := config.DefaultFilePath()
	if err != nil {
		fail("Error getting config path: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fail("Error loading config: %v", err)
	}
	return cfg
}

// zenProfile resolves the Zen profile directory from config or discovery.
func (a *app) zenProfile() string {
	cfg := a.loadConfig()
	if cfg.ZenProfilePath != "" {
		return cfg.ZenProfilePath
	}
	profile, err := zen.FindProfile()
	if err != nil {
		fail("Error locating Zen profile: %v", err)
	}
	return profile
}

func (a *app) prompt(question string) string {
	fmt.Print(question)
	line, _ := a.stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) confirm(question string) bool {
	answer := a.prompt(question + " [y/N] ")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// prettyStamp reformats a snapshot timestamp for display.
func prettyStamp(stamp string) string {
	t, err := time.ParseInLocation("20060102_150405", stamp, time.Local)
	if err != nil {
		return ""
	}
	return t.Format("Mon, 02 Jan 2006 15:04:05")
}

func optArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func splitVerbose(args []string) ([]string, bool) {
	var rest []string
	verbose := false
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			continue
		}
		rest = append(rest, arg)
	}
	return rest, verbose
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
