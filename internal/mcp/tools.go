package mcp

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftvolume/internal/models"
	"github.com/meltforce/liftvolume/internal/volume"
)

var methodNames = func() []string {
	names := make([]string, len(volume.Methods))
	for i, m := range volume.Methods {
		names[i] = string(m)
	}
	return names
}()

func methodOption() mcp.ToolOption {
	return mcp.WithString("method",
		mcp.Description("Counting method. Total credits secondary and tertiary muscles fully, Fractional at 0.5/0.17, Direct only counts the primary muscle. Defaults to Total."),
		mcp.Enum(methodNames...),
	)
}

// requestMethod reads the method argument, defaulting to Total when absent.
func requestMethod(req mcp.CallToolRequest) (volume.Method, error) {
	return volume.ParseMethod(req.GetString("method", string(volume.Total)))
}

// --- Tool definitions ---

var toolGetWeeklySummary = mcp.NewTool("get_weekly_summary",
	mcp.WithDescription("Weekly training volume per muscle group across all routines: total sets, reps (sets x max reps), and weight (sets x weight), rounded to one decimal."),
	methodOption(),
)

var toolGetSessionSummary = mcp.NewTool("get_session_summary",
	mcp.WithDescription("Training volume per routine and primary muscle group: total sets and reps. Muscles that are only trained as secondary or tertiary within a routine get no row."),
	methodOption(),
	mcp.WithString("routine", mcp.Description("Restrict to one routine label (e.g. 'A1')")),
)

var toolGetContributions = mcp.NewTool("get_contributions",
	mcp.WithDescription("Per-muscle-group credits of a single planned entry under a counting method."),
	mcp.WithString("entry_id", mcp.Required(), mcp.Description("Entry UUID as returned by list_entries")),
	methodOption(),
)

var toolFilterExercises = mcp.NewTool("filter_exercises",
	mcp.WithDescription("Find catalog exercise names matching every given attribute exactly. Omitted attributes are ignored; no attributes returns the whole catalog."),
	mcp.WithString("primary_muscle_group", mcp.Description("Primary muscle group (e.g. 'Chest')")),
	mcp.WithString("secondary_muscle_group", mcp.Description("Secondary muscle group")),
	mcp.WithString("tertiary_muscle_group", mcp.Description("Tertiary muscle group")),
	mcp.WithString("force", mcp.Description("Force type (e.g. 'Push', 'Pull')")),
	mcp.WithString("equipment", mcp.Description("Equipment (e.g. 'Barbell')")),
	mcp.WithString("mechanic", mcp.Description("Mechanic (e.g. 'Compound', 'Isolation')")),
	mcp.WithString("difficulty", mcp.Description("Difficulty level")),
)

var toolListEntries = mcp.NewTool("list_entries",
	mcp.WithDescription("List the planned exercise entries: routine, exercise, sets, rep range, RIR, and weight."),
	mcp.WithString("routine", mcp.Description("Restrict to one routine label")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (case-insensitive partial match)")),
)

// --- Tool handlers ---

func (h *handlers) getWeeklySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := requestMethod(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.ds.WeeklySummary(ctx, m)
	if err != nil {
		h.log.Error("mcp get_weekly_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := requestMethod(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.ds.SessionSummary(ctx, m, req.GetString("routine", ""))
	if err != nil {
		h.log.Error("mcp get_session_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getContributions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("entry_id")
	if err != nil {
		return mcp.NewToolResultError("entry_id parameter is required"), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("invalid entry_id: " + err.Error()), nil
	}
	m, err := requestMethod(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	contribs, err := h.ds.Contributions(ctx, id, m)
	if err != nil {
		h.log.Error("mcp get_contributions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(contribs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) filterExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var f models.ExerciseFilter
	for _, field := range models.FilterFields {
		f.Set(field, strings.TrimSpace(req.GetString(field, "")))
	}

	names, err := h.ds.FilterExercises(ctx, f)
	if err != nil {
		h.log.Error("mcp filter_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(names)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.ds.Entries(ctx)
	if err != nil {
		h.log.Error("mcp list_entries", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	routine := req.GetString("routine", "")
	exercise := strings.ToLower(req.GetString("exercise", ""))
	filtered := make([]models.SelectionEntry, 0, len(entries))
	for _, e := range entries {
		if routine != "" && e.Routine != routine {
			continue
		}
		if exercise != "" && !strings.Contains(strings.ToLower(e.Exercise), exercise) {
			continue
		}
		filtered = append(filtered, e)
	}

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
