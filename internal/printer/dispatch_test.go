package printer_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	mocks_printer "github.com/AvengeMedia/dankprint/internal/mocks/printer"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type rawBackend struct {
	*mocks_printer.MockBackend
	*mocks_printer.MockRawPrinter
}

func newRawBackend(t *testing.T) rawBackend {
	return rawBackend{
		MockBackend:    mocks_printer.NewMockBackend(t),
		MockRawPrinter: mocks_printer.NewMockRawPrinter(t),
	}
}

func TestPrintDirect_DefaultsAndUppercase(t *testing.T) {
	b := newRawBackend(t)
	b.MockBackend.EXPECT().GetDefaultPrinterName(mock.Anything).Return("office", nil).Once()
	b.MockRawPrinter.EXPECT().
		PrintDirect(mock.Anything, []byte("X"), "office", "node print job", "RAW", map[string]string{}).
		Return(17, nil).
		Once()

	svc := printer.NewService(b)
	res := <-svc.Submit(context.Background(), printer.SubmissionRequest{Data: []byte("X"), Type: "raw"})

	require.NoError(t, res.Err)
	assert.Equal(t, 17, res.JobID)
	assert.Equal(t, printer.PathNative, res.Path)
}

func TestPrintDirect_TypeUppercasedAnyCase(t *testing.T) {
	for _, typ := range []string{"raw", "Raw", "RAW", "tExT"} {
		t.Run(typ, func(t *testing.T) {
			b := newRawBackend(t)
			b.MockRawPrinter.EXPECT().
				PrintDirect(mock.Anything, mock.Anything, "office", mock.Anything, strings.ToUpper(typ), mock.Anything).
				Return(1, nil).
				Once()

			_, err := printer.NewService(b).PrintDirect(context.Background(), printer.SubmissionRequest{
				Data:    []byte("X"),
				Printer: "office",
				Type:    typ,
			})
			require.NoError(t, err)
		})
	}
}

func TestPrintDirect_LegacyOptions(t *testing.T) {
	b := newRawBackend(t)
	b.MockRawPrinter.EXPECT().
		PrintDirect(mock.Anything, mock.Anything, "office", mock.Anything, "RAW",
			map[string]string{"media": "A4", "fit-to-page": "false", "copies": "2"}).
		Return(3, nil).
		Once()

	id, err := printer.NewService(b).PrintDirect(context.Background(), printer.SubmissionRequest{
		Data:    []byte("X"),
		Printer: "office",
		Options: map[string]string{"copies": "2"},
		Legacy:  &printer.LegacyOptions{Media: "A4"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestPrintDirect_LegacyOptionsDefaults(t *testing.T) {
	b := newRawBackend(t)
	b.MockRawPrinter.EXPECT().
		PrintDirect(mock.Anything, mock.Anything, "office", mock.Anything, "RAW",
			map[string]string{"media": "", "fit-to-page": "false"}).
		Return(4, nil).
		Once()

	id, err := printer.NewService(b).PrintDirect(context.Background(), printer.SubmissionRequest{
		Data:    []byte("X"),
		Printer: "office",
		Legacy:  &printer.LegacyOptions{},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, id)
}

func TestPrintDirect_NativeFailures(t *testing.T) {
	t.Run("zero job id", func(t *testing.T) {
		b := newRawBackend(t)
		b.MockRawPrinter.EXPECT().PrintDirect(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(0, nil).Once()

		_, err := printer.NewService(b).PrintDirect(context.Background(), printer.SubmissionRequest{Data: []byte("X"), Printer: "office"})
		var be *printer.BackendError
		require.ErrorAs(t, err, &be)
		assert.EqualError(t, err, "something went wrong")
	})

	t.Run("message unchanged", func(t *testing.T) {
		b := newRawBackend(t)
		b.MockRawPrinter.EXPECT().PrintDirect(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(0, errors.New("client-error-not-possible")).Once()

		_, err := printer.NewService(b).PrintDirect(context.Background(), printer.SubmissionRequest{Data: []byte("X"), Printer: "office"})
		var be *printer.BackendError
		require.ErrorAs(t, err, &be)
		assert.EqualError(t, err, "client-error-not-possible")
	})

	t.Run("panic recovered", func(t *testing.T) {
		b := newRawBackend(t)
		b.MockRawPrinter.EXPECT().PrintDirect(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			RunAndReturn(func(context.Context, []byte, string, string, string, map[string]string) (int, error) {
				panic("driver exploded")
			}).Once()

		res := <-printer.NewService(b).Submit(context.Background(), printer.SubmissionRequest{Data: []byte("X"), Printer: "office"})
		var be *printer.BackendError
		require.ErrorAs(t, res.Err, &be)
		assert.Contains(t, res.Err.Error(), "driver exploded")
		assert.Equal(t, printer.PathNative, res.Path)
	})

	t.Run("no default printer", func(t *testing.T) {
		b := newRawBackend(t)
		b.MockBackend.EXPECT().GetDefaultPrinterName(mock.Anything).Return("", nil).Once()
		b.MockBackend.EXPECT().GetPrinters(mock.Anything).Return(nil, nil).Once()

		res := <-printer.NewService(b).Submit(context.Background(), printer.SubmissionRequest{Data: []byte("X")})
		var verr *printer.ValidationError
		require.ErrorAs(t, res.Err, &verr)
		assert.ErrorIs(t, res.Err, printer.ErrNoDefaultPrinter)
		assert.Equal(t, printer.PathNone, res.Path)
	})
}

func TestPrintDirect_Subprocess(t *testing.T) {
	fs := afero.NewMemMapFs()
	var (
		gotName string
		gotArgs []string
		payload []byte
	)
	spooler := &printer.LprSpooler{
		Fs:      fs,
		TempDir: "/spool",
		Command: "lpr",
		Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName = name
			gotArgs = args
			payload, _ = afero.ReadFile(fs, args[len(args)-1])
			return nil, nil
		},
	}

	backend := mocks_printer.NewMockBackend(t)
	svc := printer.NewService(backend, printer.WithSpooler(spooler), printer.WithGOOS("linux"))

	res := <-svc.Submit(context.Background(), printer.SubmissionRequest{Data: []byte("hello"), Printer: "test_printer"})
	require.NoError(t, res.Err)
	assert.Equal(t, printer.PathSubprocess, res.Path)
	assert.Zero(t, res.JobID)

	assert.Equal(t, "lpr", gotName)
	require.Len(t, gotArgs, 4)
	assert.Equal(t, []string{"-Ptest_printer", "-oraw", "-r"}, gotArgs[:3])
	assert.True(t, strings.HasPrefix(filepath.Base(gotArgs[3]), "printing-"))
	assert.Equal(t, "hello", string(payload))

	exists, err := afero.Exists(fs, gotArgs[3])
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPrintDirect_SubprocessFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	var tmp string
	spooler := &printer.LprSpooler{
		Fs:      fs,
		TempDir: "/spool",
		Run: func(_ context.Context, _ string, args ...string) ([]byte, error) {
			tmp = args[len(args)-1]
			return []byte("lpr: The printer or class does not exist.\n"), errors.New("exit status 1")
		},
	}

	backend := mocks_printer.NewMockBackend(t)
	svc := printer.NewService(backend, printer.WithSpooler(spooler), printer.WithGOOS("darwin"))

	_, err := svc.PrintDirect(context.Background(), printer.SubmissionRequest{Data: []byte("hello"), Printer: "nope"})
	var serr *printer.SubprocessError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "The printer or class does not exist.")
	assert.Contains(t, err.Error(), "exit status 1")

	exists, _ := afero.Exists(fs, tmp)
	assert.False(t, exists)
}

func TestPrintDirect_SubprocessStderrOnly(t *testing.T) {
	spooler := &printer.LprSpooler{
		Fs: afero.NewMemMapFs(),
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return []byte("lpr: warning"), nil
		},
	}
	svc := printer.NewService(mocks_printer.NewMockBackend(t), printer.WithSpooler(spooler), printer.WithGOOS("linux"))

	_, err := svc.PrintDirect(context.Background(), printer.SubmissionRequest{Data: []byte("x"), Printer: "office"})
	var serr *printer.SubprocessError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "lpr: warning", serr.Stderr)
}

func TestPrintDirect_SubprocessWhitespaceStderr(t *testing.T) {
	spooler := &printer.LprSpooler{
		Fs: afero.NewMemMapFs(),
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return []byte("\n"), nil
		},
	}
	svc := printer.NewService(mocks_printer.NewMockBackend(t), printer.WithSpooler(spooler), printer.WithGOOS("linux"))

	_, err := svc.PrintDirect(context.Background(), printer.SubmissionRequest{Data: []byte("x"), Printer: "office"})
	var serr *printer.SubprocessError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "lpr failed", err.Error())
}

func TestPrintDirect_ConcurrentSubmissionsUseDistinctFiles(t *testing.T) {
	var (
		mu    sync.Mutex
		paths = map[string]bool{}
	)
	spooler := &printer.LprSpooler{
		Fs:      afero.NewMemMapFs(),
		TempDir: "/spool",
		Run: func(_ context.Context, _ string, args ...string) ([]byte, error) {
			mu.Lock()
			paths[args[len(args)-1]] = true
			mu.Unlock()
			return nil, nil
		},
	}
	svc := printer.NewService(mocks_printer.NewMockBackend(t), printer.WithSpooler(spooler), printer.WithGOOS("linux"))

	var results []<-chan printer.Result
	for i := 0; i < 10; i++ {
		results = append(results, svc.Submit(context.Background(), printer.SubmissionRequest{Data: []byte("x"), Printer: "office"}))
	}
	for _, ch := range results {
		require.NoError(t, (<-ch).Err)
	}
	assert.Len(t, paths, 10)
}

func TestPrintDirect_WindowsWithoutRaw(t *testing.T) {
	backend := mocks_printer.NewMockBackend(t)
	backend.EXPECT().Name().Return("stub").Once()

	_, err := printer.NewService(backend, printer.WithGOOS("windows")).
		PrintDirect(context.Background(), printer.SubmissionRequest{Data: []byte("x"), Printer: "office"})
	var unsupported *printer.UnsupportedOperationError
	assert.ErrorAs(t, err, &unsupported)
}

func TestPrintDirectArgs(t *testing.T) {
	b := newRawBackend(t)
	b.MockRawPrinter.EXPECT().
		PrintDirect(mock.Anything, []byte("data"), "office", "report", "TEXT", map[string]string{}).
		Return(8, nil).
		Once()

	id, err := printer.NewService(b).PrintDirectArgs(context.Background(), []byte("data"), "office", "report", "text", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestPrintFile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing filename never reaches backend", func(t *testing.T) {
		backend := mocks_printer.NewMockBackend(t)

		_, err := printer.NewService(backend).PrintFile(ctx, printer.FileRequest{})
		var verr *printer.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "filename", verr.Field)
	})

	t.Run("no printer resolvable", func(t *testing.T) {
		backend := mocks_printer.NewMockBackend(t)
		backend.EXPECT().GetDefaultPrinterName(mock.Anything).Return("", nil).Once()
		backend.EXPECT().GetPrinters(mock.Anything).Return([]printer.PrinterDevice{}, nil).Once()

		_, err := printer.NewService(backend).PrintFile(ctx, printer.FileRequest{Filename: "/tmp/a.pdf"})
		var verr *printer.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "printer", verr.Field)
	})

	t.Run("numeric reply is job id", func(t *testing.T) {
		backend := mocks_printer.NewMockBackend(t)
		backend.EXPECT().GetDefaultPrinterName(mock.Anything).Return("office", nil).Once()
		backend.EXPECT().PrintFile(mock.Anything, "/tmp/a.pdf", "/tmp/a.pdf", "office", map[string]string{}).
			Return("42", nil).Once()

		id, err := printer.NewService(backend).PrintFile(ctx, printer.FileRequest{Filename: "/tmp/a.pdf"})
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("non numeric reply is backend error", func(t *testing.T) {
		backend := mocks_printer.NewMockBackend(t)
		backend.EXPECT().PrintFile(mock.Anything, "/tmp/a.pdf", "doc", "office", map[string]string{}).
			Return("Not yet implemented on Windows", nil).Once()

		_, err := printer.NewService(backend).PrintFile(ctx, printer.FileRequest{Filename: "/tmp/a.pdf", DocName: "doc", Printer: "office"})
		var be *printer.BackendError
		require.ErrorAs(t, err, &be)
		assert.EqualError(t, err, "Not yet implemented on Windows")
	})
}

func TestScenario_PrintThenGetJob(t *testing.T) {
	b := newRawBackend(t)
	b.MockRawPrinter.EXPECT().
		PrintDirect(mock.Anything, []byte("hello"), "test_printer", "node print job", "RAW", map[string]string{}).
		Return(42, nil).
		Once()

	raw := printer.PrintJob{ID: 42, PrinterName: "test_printer", Name: "node print job"}
	raw.Options.Set("job-state", "5")
	b.MockBackend.EXPECT().GetJob(mock.Anything, "test_printer", 42).Return(raw, nil).Once()

	svc := printer.NewService(b)
	ctx := context.Background()

	id, err := svc.PrintDirect(ctx, printer.SubmissionRequest{Data: []byte("hello"), Printer: "test_printer"})
	require.NoError(t, err)
	require.Equal(t, 42, id)

	job, err := svc.Job(ctx, "test_printer", id)
	require.NoError(t, err)
	assert.Equal(t, "test_printer", job.PrinterName)
	assert.Equal(t, []string{"PRINTING"}, job.Status)
}
