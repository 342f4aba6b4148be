package validation

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/time/rate"

	"ppvcheck/catalog"
	"ppvcheck/classify"
	"ppvcheck/database"
	"ppvcheck/extract"
	"ppvcheck/internal/config"
	"ppvcheck/schedule"
	"ppvcheck/workbook"
)

// Derived-sheet column positions, fixed by the export layout.
const (
	colBillingID = 8  // H
	colPrice     = 9  // I
	colCorp      = 10 // J
	colDate      = 11 // K
)

// Input is one event to validate. Tiers carry the operator-supplied
// targets; inactive tiers are skipped at every stage.
type Input struct {
	EventName string
	Date      string // e.g. "Saturday June 15"
	Clock     string // e.g. "7:00p"
	Year      int
	Tiers     []extract.Tier
}

// Runner drives one top-to-bottom validation run.
type Runner struct {
	cfg     *config.Config
	catalog *catalog.Client
	http    *http.Client
	runs    *database.RunsDB
}

// NewRunner wires a runner from configuration. The runs store may be
// nil; history recording is then skipped.
func NewRunner(cfg *config.Config, runs *database.RunsDB) *Runner {
	return &Runner{
		cfg: cfg,
		catalog: catalog.NewClient(catalog.ClientConfig{
			GridURL:   cfg.GridURL,
			OfferURL:  cfg.OfferURL,
			TagURL:    cfg.TagURL,
			Timeout:   cfg.HTTPTimeout,
			RateLimit: rate.Limit(cfg.RateLimitPerSec),
		}),
		http: &http.Client{Timeout: cfg.HTTPTimeout},
		runs: runs,
	}
}

// tierResult gathers everything one tier produced during a run.
type tierResult struct {
	tier      extract.Tier
	sheet     *classify.Sheet
	avail     *classify.Sheet
	extracted int
	matched   int
	listing   catalog.Listing
	mediaGUID string
	tags      []string
}

// Run executes the whole validation procedure for one event: normalize
// the schedule, fetch and convert the export, classify each active
// tier, reconcile corp codes against the master reference, look up the
// catalog and audit availability tags, then write the styled workbook.
func (r *Runner) Run(ctx context.Context, in Input) error {
	started := time.Now()

	active := activeTiers(in.Tiers)
	if len(active) == 0 {
		return fmt.Errorf("no tier has a billing event id, nothing to validate")
	}

	sched, err := schedule.Normalize(in.Date, in.Clock, in.Year)
	if err != nil {
		return err
	}
	log.Printf("Broadcast window in UTC: %s to %s", sched.MatchKey(), sched.EndKey())
	log.Printf("Grid query stamp: %s", sched.QueryStamp())

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if _, err := workbook.DownloadLatestExport(ctx, r.http, r.cfg.ExportListingURL, r.cfg.OutputDir); err != nil {
		return err
	}
	csvPath, err := workbook.FindExportCSV(r.cfg.OutputDir)
	if err != nil {
		return err
	}
	outPath, err := workbook.ConvertExport(csvPath, r.cfg.OutputDir, in.EventName)
	if err != nil {
		return err
	}
	log.Printf("Export converted and renamed to %s", outPath)

	// Drop the raw CSV so the next run starts from a clean directory.
	if err := os.Remove(csvPath); err != nil {
		log.Printf("Failed to remove %s: %v", csvPath, err)
	}

	exp, err := workbook.ReadExport(outPath)
	if err != nil {
		return err
	}
	log.Printf("Read %d export rows", len(exp.Rows))

	master, err := workbook.LoadMasterCorp(r.cfg.MasterCorpPath)
	if err != nil {
		return err
	}
	ref := classify.NewReference(master.CorpValues)
	log.Printf("Loaded %d master corp values", ref.Len())

	var results []*tierResult
	for _, tier := range active {
		res := buildTierResult(exp, tier, sched.MatchKey(), ref, master.Availability)
		log.Printf("Tier %s: extracted %d rows, %d fully matched", tier.Name, res.extracted, res.matched)
		results = append(results, res)
	}

	r.lookupCatalog(ctx, in.EventName, sched, results)
	logTicketSummary(in, results)

	if err := writeWorkbook(outPath, results); err != nil {
		return err
	}
	log.Printf("Saved the validation workbook to %s", outPath)

	r.recordRun(in, outPath, started, results)

	log.Printf("PPV validation for %s completed in %.2f seconds", in.EventName, time.Since(started).Seconds())
	return nil
}

func activeTiers(tiers []extract.Tier) []extract.Tier {
	var active []extract.Tier
	for _, t := range tiers {
		if t.Active() {
			active = append(active, t)
		}
	}
	return active
}

// buildTierResult extracts a tier's subset, classifies the billing id,
// price and date columns, appends the expected values, runs the corp
// reconciliation and seeds the availability sheet.
func buildTierResult(exp *extract.Export, tier extract.Tier, dateKey string, ref *classify.Reference, availSeed [][]string) *tierResult {
	rows := exp.Filter(tier)

	sheet := classify.NewSheet(fmt.Sprintf("%s - %s", tier.Name, tier.BillingID))
	sheet.Append(exp.Header)
	for _, row := range rows {
		sheet.Append(row)
	}

	classify.ClassifyColumn(sheet, colBillingID, classify.MatchString(tier.BillingID), 2)
	if tier.HasPrice {
		classify.ClassifyColumn(sheet, colPrice, classify.MatchPrice(tier.Price), 2)
	}
	classify.ClassifyColumn(sheet, colDate, classify.MatchString(dateKey), 2)

	matched := 0
	for row := 2; row <= 1+len(rows); row++ {
		if sheet.MarkAt(colBillingID, row) != classify.Match {
			continue
		}
		if tier.HasPrice && sheet.MarkAt(colPrice, row) != classify.Match {
			continue
		}
		if sheet.MarkAt(colDate, row) != classify.Match {
			continue
		}
		matched++
	}

	classify.AppendExpected(sheet, colBillingID, tier.BillingID, 2)
	if tier.HasPrice {
		classify.AppendExpected(sheet, colPrice, formatPrice(tier.Price), 2)
	}
	classify.AppendExpected(sheet, colDate, dateKey, 2)

	ref.Reconcile(sheet, colCorp, 2)

	avail := classify.NewSheet(fmt.Sprintf("%s Availabilities", tier.Name))
	for _, row := range availSeed {
		avail.Append(row)
	}

	return &tierResult{
		tier:      tier,
		sheet:     sheet,
		avail:     avail,
		extracted: len(rows),
		matched:   matched,
	}
}

// lookupCatalog resolves listings, media GUIDs and availability tags
// for every tier. Remote absence is not fatal: a missing grid page or
// an empty lookup leaves the tier's availability audit showing only the
// canonical seed.
func (r *Runner) lookupCatalog(ctx context.Context, eventName string, sched schedule.Schedule, results []*tierResult) {
	doc, err := r.catalog.FetchGrid(ctx, catalog.GridQuery{
		AccountID:         r.cfg.AccountID,
		StartDate:         sched.QueryStamp(),
		ClientProfile:     r.cfg.ClientProfile,
		SupportedCatalogs: r.cfg.SupportedCatalogs,
		FreeToMe:          "off",
	})
	if err != nil {
		log.Printf("Grid listing unavailable, continuing without catalog lookups: %v", err)
		return
	}

	for _, res := range results {
		listings := catalog.ParseListings(doc, res.tier.GridZone, eventName)
		if len(listings) == 0 {
			log.Printf("Tier %s: no grid listing matched %q", res.tier.Name, eventName)
			continue
		}
		res.listing = listings[0]

		guid, err := r.catalog.MediaGUID(ctx, res.listing.ListingID, res.tier.BillingID)
		if err != nil {
			log.Printf("Tier %s: media GUID lookup failed, continuing: %v", res.tier.Name, err)
			continue
		}
		res.mediaGUID = guid

		res.tags = r.catalog.FetchFilteredTags(ctx, guid, res.tier.BillingID)
		if len(res.tags) == 0 {
			continue
		}

		for i, tag := range res.tags {
			res.avail.SetValue(2, i+1, tag)
		}
		classify.ReconcileColumns(res.avail, 1, 2, 1)
	}
}

// logTicketSummary narrates the identifiers the operator pastes into
// the validation ticket.
func logTicketSummary(in Input, results []*tierResult) {
	log.Printf("--- Details for ticket creation ---")
	log.Printf("PPV Validations - %s", in.EventName)
	log.Printf("%s, event time %s", in.Date, in.Clock)
	for _, res := range results {
		if res.tier.HasPrice {
			log.Printf("%s price: %s", res.tier.Name, formatPrice(res.tier.Price))
		}
	}
	for _, res := range results {
		log.Printf("%s: %s", res.tier.Name, res.tier.BillingID)
		log.Printf("  listing id: %s", res.listing.ListingID)
		log.Printf("  program id: %s", res.listing.ProgramID)
		log.Printf("  channel id: %s", res.listing.ChannelID)
		log.Printf("  station id: %s", res.listing.StationID)
		log.Printf("  media GUID: %s", res.mediaGUID)
		log.Printf("  availability tags: %d", len(res.tags))
	}
}

// writeWorkbook appends every derived sheet to the converted export
// workbook and saves it in place.
func writeWorkbook(path string, results []*tierResult) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to reopen workbook: %w", err)
	}
	defer f.Close()

	writer, err := workbook.NewWriter(f)
	if err != nil {
		return err
	}

	for _, res := range results {
		if err := writer.WriteSheet(res.sheet); err != nil {
			return err
		}
		if err := writer.WriteSheet(res.avail); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// recordRun stores the run in the history database. History is an
// audit convenience; failures are logged, not fatal.
func (r *Runner) recordRun(in Input, outPath string, started time.Time, results []*tierResult) {
	if r.runs == nil {
		return
	}

	run := &database.Run{
		ID:         uuid.NewString(),
		EventName:  in.EventName,
		Year:       in.Year,
		OutputPath: outPath,
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	for _, res := range results {
		run.Tiers = append(run.Tiers, database.TierSummary{
			Tier:      res.tier.Name,
			BillingID: res.tier.BillingID,
			Extracted: res.extracted,
			Matched:   res.matched,
			MediaGUID: res.mediaGUID,
			TagsFound: len(res.tags),
		})
	}

	if err := r.runs.SaveRun(run); err != nil {
		log.Printf("Failed to record run history: %v", err)
	}
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
