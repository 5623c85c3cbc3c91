package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetHeldOrdersQueryHandler lists hold records from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetHeldOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetHeldOrdersQueryHandler creates a handler for held-order queries.
// Requires a GORM database connection for query execution.
func NewGetHeldOrdersQueryHandler(db *gorm.DB) GetHeldOrdersQueryHandler {
	return GetHeldOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by customer name and hold time
// so group members appear together in accumulation order.
func (h GetHeldOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetHeldOrdersQuery,
) ([]GetHeldOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	held := make([]GetHeldOrdersQueryResponse, 0)

	sql := `
		SELECT
			order_id,
			grouping_key,
			holder_email,
			assignee_email,
			held_at
		FROM holds
	`
	args := make([]any, 0, 1)
	if query.CustomerName() != "" {
		sql += ` WHERE grouping_key = ?`
		args = append(args, query.CustomerName())
	}
	sql += ` ORDER BY grouping_key, held_at`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetHeldOrdersQueryResponse

		err = rows.Scan(
			&record.OrderID,
			&record.CustomerName,
			&record.HolderEmail,
			&record.AssigneeEmail,
			&record.HeldAt,
		)
		if err != nil {
			return nil, err
		}

		held = append(held, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return held, nil
}
