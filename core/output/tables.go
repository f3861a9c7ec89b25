package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"hostforge/adapters/hclcatalog"
	"hostforge/adapters/storage"
	"hostforge/core/catalog"
	"hostforge/core/generator"
	"hostforge/core/validator"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
}

func WriteIdentifierTable(w io.Writer, ids []generator.Identifier) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "#\tHOSTNAME\tVENDOR\tTYPE\tSECTOR\tLOCATION")
	for _, id := range ids {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", id.IndexInBatch, id.Hostname, id.Vendor, id.Type, id.Sector, id.Location)
	}
	_ = tw.Flush()
}

func WriteDecodedTable(w io.Writer, decoded []*generator.Decoded) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "HOSTNAME\tVENDOR\tTYPE\tSECTOR\tLOCATION\tNUMBER")
	for _, d := range decoded {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			d.Hostname,
			nameOrCode(d.Vendor, d.Codes.Vendor),
			nameOrCode(d.Type, d.Codes.Type),
			nameOrCode(d.Sector, d.Codes.Sector),
			nameOrCode(d.Location, d.Codes.Location),
			d.Number,
		)
	}
	_ = tw.Flush()
}

func WriteSectorTable(w io.Writer, sectors []generator.SectorReport) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "SECTOR\tCODE\tCOUNT\tNEXT\tUSED\tLAST")
	for _, s := range sectors {
		last := "-"
		if n := len(s.Hostnames); n > 0 {
			last = s.Hostnames[n-1]
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s%%\t%s\n", s.Sector, dash(s.Code), s.Count, s.Next, s.Utilization.StringFixed(2), last)
	}
	_ = tw.Flush()
}

func WriteCatalogTable(w io.Writer, kind catalog.Kind, entries []catalog.Entry) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintf(tw, "%s\tCODE\tSOURCE\n", strings.ToUpper(string(kind)))
	for _, e := range entries {
		source := "custom"
		if e.Builtin {
			source = "builtin"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Code, source)
	}
	_ = tw.Flush()
}

func WriteFindingTable(w io.Writer, findings []catalog.Finding) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "KIND\tNAME\tCODE\tFINDING")
	for _, f := range findings {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Kind, f.Name, f.Code, f.Message)
	}
	_ = tw.Flush()
}

func WriteOutcomeTable(w io.Writer, outcomes []hclcatalog.Outcome) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "KIND\tNAME\tCODE\tRESULT")
	for _, o := range outcomes {
		result := "added"
		if !o.Added {
			result = "skipped: " + o.Reason
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Entry.Kind, o.Entry.Name, o.Entry.Code, result)
	}
	_ = tw.Flush()
}

func WriteBatchTable(w io.Writer, batches []*storage.Batch) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "ID\tCREATED\tSECTOR\tCOUNT\tFIRST\tLAST")
	for _, b := range batches {
		first, last := "-", "-"
		if n := len(b.Hostnames); n > 0 {
			first, last = b.Hostnames[0], b.Hostnames[n-1]
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", b.ID, formatTime(b.CreatedAt), b.Request.Sector, len(b.Hostnames), first, last)
	}
	_ = tw.Flush()
}

func WriteDuplicateTable(w io.Writer, duplicates []validator.Duplicate) {
	tw := newTabWriter(w)
	_, _ = fmt.Fprintln(tw, "HOSTNAME\tINDEX\tFIRST_INDEX\tMESSAGE")
	for _, d := range duplicates {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", d.Hostname, d.Index, d.FirstIndex, d.Message)
	}
	_ = tw.Flush()
}

func nameOrCode(name, code string) string {
	if name != "" {
		return name
	}
	return "?" + code
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
