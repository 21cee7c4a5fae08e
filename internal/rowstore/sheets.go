package rowstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/services"
)

// SheetsStore implements Store against one Google spreadsheet.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewSheets builds the production row store from configuration. Credentials
// come either from a service-account JSON file or from an inline client
// email and private key.
func NewSheets(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*SheetsStore, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "configuration is required", nil)
	}
	spreadsheetID := strings.TrimSpace(cfg.Sheets.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "sheets.spreadsheet_id is not set", nil)
	}

	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(cfg.Sheets.CredentialsFile) != "":
		opts = append(opts,
			option.WithCredentialsFile(cfg.Sheets.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsScope),
		)
	case strings.TrimSpace(cfg.Sheets.ClientEmail) != "" && strings.TrimSpace(cfg.Sheets.PrivateKey) != "":
		conf := &jwt.Config{
			Email:      cfg.Sheets.ClientEmail,
			PrivateKey: []byte(cfg.Sheets.PrivateKey),
			Scopes:     []string{sheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithHTTPClient(conf.Client(ctx)))
	default:
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "sheets credentials are not set", nil)
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "rowstore", "init", "create sheets client", err)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logging.NewComponentLogger(logger, "rowstore"),
	}, nil
}

func (s *SheetsStore) GetRows(ctx context.Context, sheet, a1 string) ([][]string, error) {
	fullRange := sheet
	if a1 != "" {
		fullRange = sheet + "!" + a1
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, fullRange).Context(ctx).Do()
	if err != nil {
		s.logger.Error("fetch rows failed",
			logging.String(logging.FieldSheet, sheet),
			logging.Error(err))
		return nil, services.Wrap(services.ErrStoreAccess, "rowstore", "get "+sheet, "", err)
	}
	return fromValueRows(resp.Values), nil
}

func (s *SheetsStore) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	body := &sheets.ValueRange{Values: toValueRows(rows)}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheet, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("append rows failed",
			logging.String(logging.FieldSheet, sheet),
			logging.Int("rows", len(rows)),
			logging.Error(err))
		return services.Wrap(services.ErrStoreAccess, "rowstore", "append "+sheet, "", err)
	}
	return nil
}

func (s *SheetsStore) UpdateRange(ctx context.Context, sheet, a1 string, rows [][]string) error {
	body := &sheets.ValueRange{Values: toValueRows(rows)}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheet+"!"+a1, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("update range failed",
			logging.String(logging.FieldSheet, sheet),
			logging.String("range", a1),
			logging.Error(err))
		return services.Wrap(services.ErrStoreAccess, "rowstore", "update "+sheet, "", err)
	}
	return nil
}

func (s *SheetsStore) ClearRange(ctx context.Context, sheet, a1 string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, sheet+"!"+a1, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("clear range failed",
			logging.String(logging.FieldSheet, sheet),
			logging.String("range", a1),
			logging.Error(err))
		return services.Wrap(services.ErrStoreAccess, "rowstore", "clear "+sheet, "", err)
	}
	return nil
}

func (s *SheetsStore) DeleteRow(ctx context.Context, sheet string, rowIndex int) error {
	sheetID, err := s.resolveSheetID(ctx, sheet)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex),
					EndIndex:   int64(rowIndex + 1),
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		s.logger.Error("delete row failed",
			logging.String(logging.FieldSheet, sheet),
			logging.Int("row_index", rowIndex),
			logging.Error(err))
		return services.Wrap(services.ErrStoreAccess, "rowstore", "delete row in "+sheet, "", err)
	}
	return nil
}

func (s *SheetsStore) Close() error { return nil }

// resolveSheetID maps a sheet title to its numeric identifier, which the
// DeleteDimension request requires.
func (s *SheetsStore) resolveSheetID(ctx context.Context, sheet string) (int64, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		s.logger.Error("fetch spreadsheet metadata failed",
			logging.String(logging.FieldSheet, sheet),
			logging.Error(err))
		return 0, services.Wrap(services.ErrStoreAccess, "rowstore", "resolve sheet "+sheet, "", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheet {
			return sh.Properties.SheetId, nil
		}
	}
	err = services.WithUserMessage(fmt.Sprintf("sheet %q not found", sheet), ErrSheetNotFound)
	return 0, services.Wrap(services.ErrNotFound, "rowstore", "resolve sheet "+sheet, "", err)
}

func toValueRows(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, cell := range row {
			vals[j] = cell
		}
		out[i] = vals
	}
	return out
}

func fromValueRows(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		out[i] = cells
	}
	return out
}
