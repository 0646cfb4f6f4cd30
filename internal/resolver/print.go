package resolver

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jschwinger233/resolveaddr/internal/procmaps"
	"github.com/jschwinger233/resolveaddr/internal/soldlog"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var (
	pathColor   = color.New(color.FgCyan)
	moduleColor = color.New(color.FgGreen, color.Bold)
	missColor   = color.New(color.FgYellow)
)

func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "Loaded address: %x\n", r.Addr)
	if r.Region == nil {
		missColor.Fprintln(w, "Not found in maps")
		return
	}

	path := r.Region.Path
	if r.Region.Anonymous() {
		path = "[anonymous]"
	}
	fmt.Fprint(w, "Loaded path: ")
	pathColor.Fprintln(w, path)
	fmt.Fprintf(w, "Virtual address before reloc: %x\n", r.RelAddr)

	if len(r.Owners) == 0 {
		missColor.Fprintln(w, "No owning module")
		return
	}
	for _, owner := range r.Owners {
		fmt.Fprint(w, "Address in ")
		moduleColor.Fprint(w, owner.Module)
		fmt.Fprintf(w, ": %x\n", owner.OrigAddr)
	}
}

func PrintSegments(w io.Writer, segments []soldlog.Segment) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"module", "vaddr", "end", "orig vaddr", "memsz", "line"})
	table.AppendBulk(lo.Map(segments, func(s soldlog.Segment, _ int) []string {
		return []string{
			s.Name,
			fmt.Sprintf("%x", s.Vaddr),
			fmt.Sprintf("%x", s.End()),
			fmt.Sprintf("%x", s.OrigVaddr),
			humanize.IBytes(s.Memsz),
			fmt.Sprintf("%d", s.Line),
		}
	}))
	table.Render()
}

func PrintRegions(w io.Writer, regions []procmaps.MappedRegion) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"start", "end", "perms", "size", "base", "path"})
	table.AppendBulk(lo.Map(regions, func(r procmaps.MappedRegion, _ int) []string {
		return []string{
			fmt.Sprintf("%x", r.Start),
			fmt.Sprintf("%x", r.End),
			r.Perms,
			humanize.IBytes(r.Size()),
			fmt.Sprintf("%x", r.Base),
			r.Path,
		}
	}))
	table.Render()
}
