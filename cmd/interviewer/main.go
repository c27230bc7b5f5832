package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/kmalyshev/voice-interviewer/internal/builder"
	"github.com/kmalyshev/voice-interviewer/internal/entity"
	"github.com/kmalyshev/voice-interviewer/internal/usecase/interview"
)

const waveformFrameInterval = 100 * time.Millisecond

func main() {
	app, err := builder.BuildCLI(os.Stdout)
	if err != nil {
		log.Fatal("Failed to build terminal client:", err)
	}

	if err := run(app); err != nil {
		app.Logger.Error("terminal client error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(app *builder.CLIApp) error {
	ctx := context.Background()

	profile, err := collectProfile()
	if err != nil {
		return err
	}

	fmt.Println("Starting interview...")
	if err := app.Usecase.Start(ctx, profile); err != nil {
		return fmt.Errorf("start interview: %w", err)
	}

	printQuestion(app.Usecase)
	printControls()

	scanner := bufio.NewScanner(os.Stdin)
	recording := false

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "":
			if recording {
				app.Visualizer.Stop()
				recording = false
				fmt.Println("Submitting answer...")
				if err := app.Usecase.EndAnswer(ctx); err != nil {
					reportError(err)
					continue
				}
				status := app.Usecase.Snapshot()
				if len(status.Session.History) > 0 {
					last := status.Session.History[len(status.Session.History)-1]
					fmt.Printf("You said: %s\n\n", last.Text)
				}
				if status.Session.Done {
					fmt.Println("The interview is complete. Press t to export the transcript, q to quit.")
					continue
				}
				printQuestion(app.Usecase)
			} else {
				if err := app.Usecase.BeginAnswer(ctx); err != nil {
					reportError(err)
					continue
				}
				recording = true
				app.Visualizer.Start(waveformFrameInterval)
				fmt.Println("Recording... press Enter to stop.")
			}

		case "h":
			if err := app.Usecase.RequestHint(ctx); err != nil {
				reportError(err)
				continue
			}
			status := app.Usecase.Snapshot()
			if n := len(status.Session.History); n > 0 && status.Session.History[n-1].Role == entity.TurnRoleHint {
				fmt.Printf("Hint: %s\n", status.Session.History[n-1].Text)
			}

		case "t":
			if err := exportTranscript(app.Usecase); err != nil {
				reportError(err)
			}

		case "r":
			app.Visualizer.Stop()
			recording = false
			app.Usecase.Reset()
			fmt.Println("Session cleared.")

			profile, err := collectProfile()
			if err != nil {
				return err
			}
			fmt.Println("Starting interview...")
			if err := app.Usecase.Start(ctx, profile); err != nil {
				reportError(err)
				continue
			}
			printQuestion(app.Usecase)

		case "q":
			app.Visualizer.Stop()
			app.Usecase.Reset()
			fmt.Println("Bye!")
			return nil

		default:
			printControls()
		}
	}

	return scanner.Err()
}

// collectProfile asks for the candidate profile and loads the resume file.
func collectProfile() (entity.CandidateProfile, error) {
	var jobRole, topic, specific, resumePath string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Job role").
				Placeholder("Backend Engineer").
				Value(&jobRole).
				Validate(required("job role")),
			huh.NewInput().
				Title("Interview topic").
				Placeholder("Distributed Systems").
				Value(&topic).
				Validate(required("topic")),
			huh.NewInput().
				Title("Specific area (optional)").
				Value(&specific),
			huh.NewInput().
				Title("Resume file").
				Placeholder("/path/to/resume.pdf").
				Value(&resumePath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("resume file is required")
					}
					if _, err := os.Stat(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("cannot read file: %v", err)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return entity.CandidateProfile{}, fmt.Errorf("profile form: %w", err)
	}

	resumePath = strings.TrimSpace(resumePath)
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return entity.CandidateProfile{}, fmt.Errorf("read resume: %w", err)
	}

	return entity.CandidateProfile{
		JobRole:       strings.TrimSpace(jobRole),
		Topic:         strings.TrimSpace(topic),
		SpecificTopic: strings.TrimSpace(specific),
		Resume: &entity.ResumeFile{
			Name:        filepath.Base(resumePath),
			ContentType: mime.TypeByExtension(filepath.Ext(resumePath)),
			Data:        data,
		},
	}, nil
}

func exportTranscript(uc *interview.Usecase) error {
	var format string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcript format").
				Options(
					huh.NewOption("Markdown", string(entity.FormatMarkdown)),
					huh.NewOption("PDF", string(entity.FormatPDF)),
					huh.NewOption("Word", string(entity.FormatDOCX)),
				).
				Value(&format),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("format form: %w", err)
	}

	data, f, err := uc.ExportTranscript(entity.ReportFormat(format))
	if err != nil {
		return err
	}

	status := uc.Snapshot()
	filename := fmt.Sprintf("transcript-%s%s", status.Session.ID, f.FileExtension())
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	fmt.Println("Transcript saved to", filename)
	return nil
}

func printQuestion(uc *interview.Usecase) {
	status := uc.Snapshot()
	fmt.Printf("\nQuestion: %s\n", status.Session.Question)
	if status.Session.HintAvailable {
		fmt.Println("(hint available: press h)")
	}
}

func printControls() {
	fmt.Println("Controls: Enter = record/stop, h = hint, t = transcript, r = restart, q = quit")
}

func reportError(err error) {
	if interview.Classify(err) == entity.SeveritySilent {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
