package block

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий блокировок расписания (отпуск, перерыв, обучение)
// Движок бронирования блокировки только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOverlapping получает блокировки профессионала, пересекающиеся с [start, end)
// Внутри транзакции строки блокируются FOR SHARE, чтобы их нельзя было удалить до commit
func (r *Repository) ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time) ([]*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"professional_id",
		"start_time",
		"end_time",
		"reason",
	).
		From("schedule_blocks").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.ScheduleBlock, 0)
	for rows.Next() {
		var b domain.ScheduleBlock
		if err := rows.Scan(&b.ID, &b.ProfessionalID, &b.StartTime, &b.EndTime, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListOverlapping - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}
