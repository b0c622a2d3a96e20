package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/allisson/users/internal/user/domain"
	"github.com/allisson/users/internal/user/http/dto"
	"github.com/allisson/users/internal/user/usecase"
)

// validationResultJSON is the machine readable output of validate-user.
type validationResultJSON struct {
	Valid      bool            `json:"valid"`
	Violations []violationJSON `json:"violations"`
	Age        *int            `json:"age,omitempty"`
	MinAge     int             `json:"min_age"`
}

type violationJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RunValidateUser reads one user JSON document and checks it the way user creation does:
// the field ruleset first, then the minimum age. A minAge of zero disables the age check.
// Returns an error when the document cannot be decoded or the user would be rejected.
func RunValidateUser(
	streams IOTuple,
	logger *slog.Logger,
	now time.Time,
	minAge int,
	format string,
) error {
	var request dto.UserRequest
	if err := json.NewDecoder(streams.Reader).Decode(&request); err != nil {
		return fmt.Errorf("failed to decode user: %w", err)
	}
	user := request.ToDomain()

	validator := domain.NewValidator(func() time.Time { return now })
	violations := validator.Validate(user)

	var age *int
	tooYoung := false
	if len(violations) == 0 && user.BirthDate != nil {
		years := usecase.AgeInYears(*user.BirthDate, now)
		age = &years
		tooYoung = years < minAge
	}

	if format == "json" {
		if err := outputValidateJSON(streams.Writer, violations, age, minAge, tooYoung); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputValidateText(streams.Writer, violations, age, minAge, tooYoung)
	}

	logger.Info("user validated",
		slog.Int("violations", len(violations)),
		slog.Bool("too_young", tooYoung),
	)

	if len(violations) > 0 {
		return fmt.Errorf("user is invalid: %d violation(s)", len(violations))
	}
	if tooYoung {
		return fmt.Errorf("%w: age %d, minimum age is %d", domain.ErrUserTooYoung, *age, minAge)
	}
	return nil
}

func outputValidateText(writer io.Writer, violations []domain.Violation, age *int, minAge int, tooYoung bool) {
	_, _ = fmt.Fprintf(writer, "User Validation\n")
	_, _ = fmt.Fprintf(writer, "===============\n\n")

	if len(violations) > 0 {
		_, _ = fmt.Fprintf(writer, "Violations:\n")
		for _, v := range violations {
			_, _ = fmt.Fprintf(writer, "  - %s: %s\n", v.Field, v.Message)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: INVALID\n")
		return
	}

	if age != nil {
		_, _ = fmt.Fprintf(writer, "Age:      %d\n", *age)
		_, _ = fmt.Fprintf(writer, "Min Age:  %d\n\n", minAge)
	}

	if tooYoung {
		_, _ = fmt.Fprintf(writer, "Status: TOO YOUNG\n")
		return
	}
	_, _ = fmt.Fprintf(writer, "Status: VALID\n")
}

func outputValidateJSON(
	writer io.Writer,
	violations []domain.Violation,
	age *int,
	minAge int,
	tooYoung bool,
) error {
	result := validationResultJSON{
		Valid:      len(violations) == 0 && !tooYoung,
		Violations: make([]violationJSON, 0, len(violations)),
		Age:        age,
		MinAge:     minAge,
	}
	for _, v := range violations {
		result.Violations = append(result.Violations, violationJSON{Field: v.Field, Message: v.Message})
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
