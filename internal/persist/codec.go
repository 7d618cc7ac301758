package persist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/frogpad/frogpad/internal/model"
)

// EncodeLists renders a whole store as a JSON array of lists.
func EncodeLists(lists []model.TaskList) ([]byte, error) {
	out := make([]model.TaskList, len(lists))
	for i := range lists {
		out[i] = normalizeList(lists[i])
	}
	return marshal(out)
}

// EncodeList renders a single list as a JSON object.
func EncodeList(list model.TaskList) ([]byte, error) {
	return marshal(normalizeList(list))
}

func DecodeLists(data []byte) ([]model.TaskList, error) {
	var lists []model.TaskList
	if err := decode(data, &lists); err != nil {
		return nil, err
	}
	if lists == nil {
		return nil, fmt.Errorf("%w: expected an array of lists", ErrInvalidFileFormat)
	}
	for i := range lists {
		if err := checkList(&lists[i]); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

func DecodeList(data []byte) (model.TaskList, error) {
	var list model.TaskList
	if err := decode(data, &list); err != nil {
		return model.TaskList{}, err
	}
	if err := checkList(&list); err != nil {
		return model.TaskList{}, err
	}
	return list, nil
}

func marshal(v any) ([]byte, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(payload, '\n'), nil
}

func decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidFileFormat)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFileFormat, err)
	}
	return nil
}

func checkList(list *model.TaskList) error {
	if list.Tasks == nil {
		list.Tasks = []model.Task{}
	}
	if err := list.Validate(); err != nil {
		return fmt.Errorf("%w: list %q: %v", ErrInvalidFileFormat, list.Name, err)
	}
	return nil
}

// normalizeList gives every task an explicit, possibly empty, sub_tasks
// array so files never contain null.
func normalizeList(list model.TaskList) model.TaskList {
	list = list.Clone()
	if list.Tasks == nil {
		list.Tasks = []model.Task{}
	}
	for i := range list.Tasks {
		normalizeTask(&list.Tasks[i])
	}
	return list
}

func normalizeTask(t *model.Task) {
	if t.SubTasks == nil {
		t.SubTasks = []model.Task{}
	}
	for i := range t.SubTasks {
		normalizeTask(&t.SubTasks[i])
	}
}
