package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bizdocs/internal/forms"
	"bizdocs/internal/logger"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Inspect intake forms and edit or validate form records",
	Long: `Every service subcategory has an intake form: a fixed set of fields with
static option lists and a list of required fields. A record is valid when
every required field holds a value (checkbox groups need at least one item).`,
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all intake forms",
	Args:  cobra.NoArgs,
	RunE:  runFormsList,
}

var formsShowCmd = &cobra.Command{
	Use:     "show [form-id]",
	Short:   "Show the fields of an intake form",
	Example: `  bizdocs forms show elektriker`,
	Args:    cobra.ExactArgs(1),
	RunE:    runFormsShow,
}

var formsValidateCmd = &cobra.Command{
	Use:   "validate [form-id] [record.json]",
	Short: "Check whether a form record is complete",
	Long: `Validate a form record and print its validity and the missing required fields.
The command exits with status 1 when the record is invalid.`,
	Example: `  bizdocs forms validate webdesign anfrage.json`,
	Args:    cobra.ExactArgs(2),
	RunE:    runFormsValidate,
}

var formsEditCmd = &cobra.Command{
	Use:   "edit [form-id]",
	Short: "Apply field edits to a form record",
	Long: `Apply edits in order to a record and print the resulting record and its validity.
Without --from the edits start from the empty record of the form.

Values are converted to the field type: checkbox groups take comma separated
items, checkboxes take true/false and number fields take decimal numbers.`,
	Example: `  bizdocs forms edit umzug --set von="Berlin" --set nach="Hamburg" \
    --set wohnflaeche=70 --set umzugsdatum=01.08.2024 --set leistungen="Möbelmontage,Einlagerung"

  bizdocs forms edit elektriker --from anfrage.json --set objektart=Gewerbe -o anfrage.json`,
	Args: cobra.ExactArgs(1),
	RunE: runFormsEdit,
}

// FormRecordOutput is the JSON output of 'forms edit' and 'forms validate'.
type FormRecordOutput struct {
	Form    string       `json:"form"`
	Data    forms.Record `json:"data,omitempty"`
	IsValid bool         `json:"isValid"`
	Missing []string     `json:"missing"`
}

func init() {
	rootCmd.AddCommand(formsCmd)
	formsCmd.AddCommand(formsListCmd, formsShowCmd, formsValidateCmd, formsEditCmd)

	formsListCmd.Flags().Bool("json", false, "Output as JSON format")
	formsShowCmd.Flags().Bool("json", false, "Output as JSON format")

	formsEditCmd.Flags().String("from", "", "Record JSON to start from")
	formsEditCmd.Flags().StringArray("set", nil, "Field edit as key=value (repeatable)")
	formsEditCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func loadFormCatalog(log zerolog.Logger) (*forms.Catalog, error) {
	catalog, err := forms.LoadCatalog()
	if err != nil {
		log.Error().Err(err).Msg("Embedded form catalog is invalid")
		return nil, fmt.Errorf("failed to load form catalog: %w", err)
	}
	return catalog, nil
}

func runFormsList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("forms")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	catalog, err := loadFormCatalog(log)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(catalog.List(), "", log)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tREQUIRED")
	for _, d := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Category, d.Name, strings.Join(d.Required, ", "))
	}
	return w.Flush()
}

func runFormsShow(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("forms")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	def, err := lookupForm(args[0], log)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(def, "", log)
	}

	fmt.Printf("%s (%s)\n\n", def.Name, def.Category)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tREQUIRED\tLABEL\tOPTIONS")
	for _, f := range def.Fields {
		required := ""
		if f.Required {
			required = "ja"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Key, f.Type, required, f.Label, strings.Join(f.Options, " | "))
	}
	return w.Flush()
}

func runFormsValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("forms")

	def, err := lookupForm(args[0], log)
	if err != nil {
		return err
	}

	var rec forms.Record
	if err := readJSONFile(args[1], &rec, log); err != nil {
		return err
	}
	if err := def.CheckRecord(rec); err != nil {
		return handleFormError(err, def.ID, log)
	}

	out := FormRecordOutput{Form: def.ID, IsValid: def.IsValid(rec), Missing: nonNil(def.Missing(rec))}
	log.Info().
		Str("form", def.ID).
		Bool("valid", out.IsValid).
		Strs("missing", out.Missing).
		Msg("Form record validated")

	if err := writeJSON(out, "", log); err != nil {
		return err
	}
	if !out.IsValid {
		return fmt.Errorf("record is incomplete, missing: %s", strings.Join(out.Missing, ", "))
	}
	return nil
}

func runFormsEdit(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("forms")

	fromPath, _ := cmd.Flags().GetString("from")
	sets, _ := cmd.Flags().GetStringArray("set")
	outputPath, _ := cmd.Flags().GetString("output")

	def, err := lookupForm(args[0], log)
	if err != nil {
		return err
	}

	var start forms.Record
	if fromPath != "" {
		if err := readJSONFile(fromPath, &start, log); err != nil {
			return err
		}
		if err := def.CheckRecord(start); err != nil {
			return handleFormError(err, def.ID, log)
		}
	}

	edits, err := parseEdits(def, sets)
	if err != nil {
		return handleFormError(err, def.ID, log)
	}

	rec, valid, err := def.Replay(start, edits)
	if err != nil {
		return handleFormError(err, def.ID, log)
	}

	log.Info().
		Str("form", def.ID).
		Int("edits", len(edits)).
		Bool("valid", valid).
		Msg("Form edits applied")

	return writeJSON(FormRecordOutput{
		Form:    def.ID,
		Data:    rec,
		IsValid: valid,
		Missing: nonNil(def.Missing(rec)),
	}, outputPath, log)
}

func lookupForm(id string, log zerolog.Logger) (*forms.Definition, error) {
	catalog, err := loadFormCatalog(log)
	if err != nil {
		return nil, err
	}
	def, err := catalog.Get(id)
	if err != nil {
		return nil, handleFormError(err, id, log)
	}
	return def, nil
}

// parseEdits turns key=value pairs into typed edits.
func parseEdits(def *forms.Definition, sets []string) ([]forms.Edit, error) {
	edits := make([]forms.Edit, 0, len(sets))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", s)
		}
		value, err := def.ParseValue(strings.TrimSpace(key), raw)
		if err != nil {
			return nil, err
		}
		edits = append(edits, forms.Edit{Field: strings.TrimSpace(key), Value: value})
	}
	return edits, nil
}

// handleFormError provides user-friendly error messages for form failures
func handleFormError(err error, formID string, log zerolog.Logger) error {
	log.Error().Err(err).Str("form", formID).Msg("Form operation failed")

	var ferr *forms.FormError
	field := ""
	if errors.As(err, &ferr) {
		field = ferr.Field
	}

	switch {
	case errors.Is(err, forms.ErrUnknownForm):
		return fmt.Errorf("unknown form %q. Run 'bizdocs forms list' to see all forms", formID)
	case errors.Is(err, forms.ErrUnknownField):
		return fmt.Errorf("form %s has no field %q. Run 'bizdocs forms show %s' to see its fields", formID, field, formID)
	case errors.Is(err, forms.ErrValueKind):
		return fmt.Errorf("invalid value for field %q: %w", field, err)
	default:
		return err
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
